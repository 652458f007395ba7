package session

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/coursebuddy/internal/assistant"
	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/store"
	"github.com/abhisek/coursebuddy/internal/tone"
)

var (
	// ErrEmptyMessage is returned for blank submissions. Nothing is appended.
	ErrEmptyMessage = errors.New("empty message")

	// ErrClosed is returned once the session has been closed.
	ErrClosed = errors.New("session closed")
)

// Mood is the avatar state.
type Mood string

const (
	MoodIdle     Mood = "idle"
	MoodThinking Mood = "thinking"
	MoodSpeaking Mood = "speaking"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Delivery reports whether a message is still being revealed.
type Delivery string

const (
	DeliveryComplete  Delivery = "complete"
	DeliveryStreaming Delivery = "streaming"
)

// Message is one entry of the conversation history.
type Message struct {
	ID        string                   `json:"id"`
	Text      string                   `json:"text"`
	Sender    Sender                   `json:"sender"`
	Timestamp time.Time                `json:"timestamp"`
	Tone      tone.Tone                `json:"tone,omitempty"`
	Resources []resources.ResourceItem `json:"resources,omitempty"`
	Delivery  Delivery                 `json:"delivery"`
}

// State is a point-in-time copy of the session for rendering.
type State struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id,omitempty"`
	PanelOpen   bool      `json:"panel_open"`
	History     []Message `json:"history"`
	Mood        Mood      `json:"mood"`
	IdleSeconds int       `json:"idle_seconds"`
	NeedsHelp   bool      `json:"needs_help"`
	ActiveTone  tone.Tone `json:"active_tone"`

	// Seed is a prefilled question waiting to be taken by the shell.
	Seed string `json:"seed,omitempty"`
}

// ContextProvider reads the collaborators' current values.
type ContextProvider interface {
	Inputs(ctx context.Context, courseID string) learner.Inputs
}

// Synthesizer composes replies.
type Synthesizer interface {
	Synthesize(ctx context.Context, message string, dc learner.DecisionContext) assistant.ResponsePayload
}

// TurnRecorder persists one event per completed assistant turn.
type TurnRecorder interface {
	AppendAssistantTurn(ctx context.Context, data store.AssistantTurnEventData) error
}

// Deps are the session's collaborators. Context and Synth are required.
type Deps struct {
	Context ContextProvider
	Synth   Synthesizer
	Events  TurnRecorder // optional
}
