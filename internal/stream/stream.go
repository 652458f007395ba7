// Package stream reveals a finished reply word by word.
package stream

import (
	"sync"
	"time"
	"unicode"
)

// DefaultTick is the interval between revealed words.
const DefaultTick = 50 * time.Millisecond

// Handle controls one running presentation.
type Handle struct {
	mu       sync.Mutex
	canceled bool
	stop     chan struct{}
	done     chan struct{}
}

// Cancel stops the presentation. Once Cancel returns no further callbacks
// are made. It is safe to call more than once and after completion, but not
// from inside a callback of the same presentation.
func (h *Handle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.canceled {
		return
	}
	h.canceled = true
	close(h.stop)
}

// Done is closed when the presentation goroutine has exited, whether it
// completed or was canceled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// emit runs fn unless the handle was canceled. It reports whether fn ran.
func (h *Handle) emit(fn func()) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.canceled {
		return false
	}
	fn()
	return true
}

// Boundaries returns the end offset of every whitespace-separated word in
// text. text[:b[i]] is the text revealed after i+1 words.
func Boundaries(text string) []int {
	var ends []int
	inWord := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if inWord && space {
			ends = append(ends, i)
		}
		inWord = !space
	}
	if inWord {
		ends = append(ends, len(text))
	}
	return ends
}

// Present reveals text one word per tick. onToken receives the growing
// prefix after each word; onDone receives the full text once at the end.
// Either callback may be nil.
func Present(text string, tick time.Duration, onToken func(partial string), onDone func(full string)) *Handle {
	if tick <= 0 {
		tick = DefaultTick
	}
	h := &Handle{stop: make(chan struct{}), done: make(chan struct{})}
	ends := Boundaries(text)

	go func() {
		defer close(h.done)

		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for next := 0; ; next++ {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
			}

			if next < len(ends) {
				partial := text[:ends[next]]
				if !h.emit(func() {
					if onToken != nil {
						onToken(partial)
					}
				}) {
					return
				}
				continue
			}

			h.emit(func() {
				if onDone != nil {
					onDone(text)
				}
			})
			return
		}
	}()

	return h
}

// Presenter allows one presentation at a time. Starting a new one cancels
// the previous.
type Presenter struct {
	mu     sync.Mutex
	tick   time.Duration
	active *Handle
}

// NewPresenter creates a Presenter revealing one word per tick.
func NewPresenter(tick time.Duration) *Presenter {
	return &Presenter{tick: tick}
}

// Present cancels any running presentation and starts a new one.
func (p *Presenter) Present(text string, onToken func(string), onDone func(string)) *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != nil {
		p.active.Cancel()
	}
	p.active = Present(text, p.tick, onToken, onDone)
	return p.active
}

// Cancel stops the running presentation, if any.
func (p *Presenter) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != nil {
		p.active.Cancel()
		p.active = nil
	}
}
