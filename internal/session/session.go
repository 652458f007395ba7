// Package session runs one assistant conversation: history, avatar mood,
// panel visibility, the idle prompt and the turn pipeline.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/coursebuddy/internal/assistant"
	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/store"
	"github.com/abhisek/coursebuddy/internal/stream"
	"github.com/abhisek/coursebuddy/internal/tone"
)

// activeStream is the assistant message currently being revealed.
type activeStream struct {
	idx     int
	payload assistant.ResponsePayload
	handle  *stream.Handle
}

// Session owns a conversation. All methods are safe for concurrent use.
type Session struct {
	id   string
	cfg  Config
	deps Deps

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	presenter *stream.Presenter
	wake      chan struct{}

	mu         sync.Mutex
	closed     bool
	courseID   string
	panelOpen  bool
	history    []Message
	mood       Mood
	idle       int
	activeTone tone.Tone
	seed       string
	queue      []string
	gen        uint64 // bumped by Clear; turns from an older generation are dropped
	busy       bool   // a dequeued turn has not started revealing yet
	active     *activeStream
	settle     *time.Timer
	subs       map[chan State]struct{}
}

// New starts a session scoped to courseID (empty for none). The history
// opens with a welcome message.
func New(cfg Config, deps Deps, courseID string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:         uuid.NewString(),
		cfg:        cfg,
		deps:       deps,
		ctx:        ctx,
		cancel:     cancel,
		presenter:  stream.NewPresenter(cfg.StreamTick),
		wake:       make(chan struct{}, 1),
		courseID:   courseID,
		mood:       MoodIdle,
		activeTone: tone.Guiding,
		subs:       make(map[chan State]struct{}),
	}
	s.history = []Message{s.welcome()}

	s.wg.Add(1)
	go s.worker()

	if cfg.IdleTick > 0 {
		s.wg.Add(1)
		go s.idleLoop()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

func (s *Session) welcome() Message {
	in := s.deps.Context.Inputs(s.ctx, s.courseID)
	w := assistant.Welcome(learner.Aggregate(in).Learner.Name)
	return Message{
		ID:        uuid.NewString(),
		Text:      w.Text,
		Sender:    SenderAssistant,
		Timestamp: time.Now(),
		Tone:      w.Tone,
		Delivery:  DeliveryComplete,
	}
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		ID:          s.id,
		CourseID:    s.courseID,
		PanelOpen:   s.panelOpen,
		History:     append([]Message(nil), s.history...),
		Mood:        s.mood,
		IdleSeconds: s.idle,
		NeedsHelp:   s.needsHelpLocked(),
		ActiveTone:  s.activeTone,
		Seed:        s.seed,
	}
}

// Subscribe returns a channel receiving the latest state after every
// change. Slow readers only see the newest state. The channel is closed
// when the session closes or the returned func is called.
func (s *Session) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	ch <- s.stateLocked()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

// notifyLocked publishes the current state, replacing any unread one.
func (s *Session) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	st := s.stateLocked()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}

// Submit queues a learner message. Blank text is rejected without side
// effects. A reply still being revealed is completed immediately.
func (s *Session) Submit(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.finishActive()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.stopSettleLocked()
	s.history = append(s.history, Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now(),
		Delivery:  DeliveryComplete,
	})
	s.queue = append(s.queue, text)
	s.mood = MoodThinking
	s.idle = 0
	s.notifyLocked()
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// worker processes submissions one at a time in arrival order.
func (s *Session) worker() {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.ctx.Done():
				return
			case <-s.wake:
				continue
			}
		}
		text := s.queue[0]
		s.queue = s.queue[1:]
		s.busy = true
		gen := s.gen
		s.mu.Unlock()

		if !s.runTurn(text, gen) {
			return
		}
	}
}

// runTurn thinks, synthesizes and starts revealing the reply. It returns
// false when the session is shutting down. A turn whose generation was
// cleared is dropped without touching the history.
func (s *Session) runTurn(text string, gen uint64) bool {
	start := time.Now()

	// A reply queued behind another completes the earlier one first.
	s.finishActive()
	s.mu.Lock()
	if s.gen != gen {
		s.dropTurnLocked()
		s.mu.Unlock()
		return true
	}
	s.stopSettleLocked()
	s.mood = MoodThinking
	courseID := s.courseID
	s.notifyLocked()
	s.mu.Unlock()

	select {
	case <-s.ctx.Done():
		return false
	case <-time.After(s.cfg.ThinkingDelay(text)):
	}

	dc := learner.Aggregate(s.deps.Context.Inputs(s.ctx, courseID))
	payload := s.deps.Synth.Synthesize(s.ctx, text, dc)
	if s.ctx.Err() != nil {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if s.gen != gen {
		s.dropTurnLocked()
		s.mu.Unlock()
		return true
	}
	idx := len(s.history)
	s.history = append(s.history, Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Timestamp: time.Now(),
		Tone:      payload.Tone,
		Resources: payload.Resources,
		Delivery:  DeliveryStreaming,
	})
	s.activeTone = payload.Tone
	s.mood = MoodSpeaking
	s.busy = false
	a := &activeStream{idx: idx, payload: payload}
	s.active = a
	a.handle = s.presenter.Present(payload.Text,
		func(partial string) { s.onToken(a, partial) },
		func(full string) { s.onDone(a, full) },
	)
	s.notifyLocked()
	s.mu.Unlock()

	s.recordTurn(courseID, payload, time.Since(start))
	return true
}

// dropTurnLocked abandons a turn made stale by Clear.
func (s *Session) dropTurnLocked() {
	s.busy = false
	if len(s.queue) == 0 && s.active == nil && s.mood == MoodThinking {
		s.mood = MoodIdle
		s.notifyLocked()
	}
}

func (s *Session) onToken(a *activeStream, partial string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != a {
		return
	}
	s.history[a.idx].Text = partial
	s.notifyLocked()
}

func (s *Session) onDone(a *activeStream, full string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != a {
		return
	}
	s.completeLocked(a, full)
	if !s.busy && len(s.queue) == 0 {
		s.armSettleLocked()
	}
	s.notifyLocked()
}

// finishActive stops the running reveal and completes its message with the
// full reply text.
func (s *Session) finishActive() {
	s.mu.Lock()
	a := s.active
	s.mu.Unlock()
	if a == nil {
		return
	}

	// Cancel outside the lock; callbacks take s.mu.
	a.handle.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == a {
		s.completeLocked(a, a.payload.Text)
		s.notifyLocked()
	}
}

func (s *Session) completeLocked(a *activeStream, full string) {
	s.history[a.idx].Text = full
	s.history[a.idx].Delivery = DeliveryComplete
	s.active = nil
}

func (s *Session) armSettleLocked() {
	s.stopSettleLocked()
	var t *time.Timer
	t = time.AfterFunc(s.cfg.SettleDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.settle != t || s.closed {
			return
		}
		s.settle = nil
		if s.mood == MoodSpeaking {
			s.mood = MoodIdle
			s.notifyLocked()
		}
	})
	s.settle = t
}

func (s *Session) stopSettleLocked() {
	if s.settle != nil {
		s.settle.Stop()
		s.settle = nil
	}
}

func (s *Session) recordTurn(courseID string, p assistant.ResponsePayload, latency time.Duration) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendAssistantTurn(s.ctx, store.AssistantTurnEventData{
		SessionID:     s.id,
		CourseID:      courseID,
		Rule:          p.Rule,
		Tone:          string(p.Tone),
		ResourceCount: len(p.Resources),
		LatencyMs:     latency.Milliseconds(),
	})
	if err != nil {
		slog.Warn("Failed to log assistant turn event", "session_id", s.id, "error", err)
	}
}

// Clear resets the history to a single welcome message. The reply being
// revealed and any queued or in-flight turns are discarded, and the avatar
// returns to idle.
func (s *Session) Clear() {
	w := s.welcome()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	a := s.active
	s.active = nil
	s.queue = nil
	s.gen++
	s.stopSettleLocked()
	s.history = []Message{w}
	s.mood = MoodIdle
	s.notifyLocked()
	s.mu.Unlock()

	// Cancel outside the lock; the stale callbacks find s.active changed.
	if a != nil {
		a.handle.Cancel()
	}
}

// Close stops all timers and the turn worker. Pending submissions are
// dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopSettleLocked()
	s.active = nil
	s.mu.Unlock()

	s.cancel()
	s.presenter.Cancel()
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		close(ch)
	}
	s.subs = map[chan State]struct{}{}
}
