package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/abhisek/coursebuddy/internal/session"
)

// clientMessage is an inbound WebSocket frame.
type clientMessage struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	CourseID string `json:"course_id,omitempty"`
	Open     *bool  `json:"open,omitempty"`
}

// serverMessage is an outbound WebSocket frame.
type serverMessage struct {
	Type  string         `json:"type"`
	State *session.State `json:"state,omitempty"`
	Error string         `json:"error,omitempty"`
}

// streamSession pushes every state change of a session to the client and
// applies the client's commands.
func (s *Server) streamSession(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "session_id", sess.ID())
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	detach := s.sessions.Attach(sess.ID())
	defer detach()

	updates, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	go func() {
		defer cancel()
		s.inputLoop(ctx, ws, sess)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(ctx, ws, serverMessage{Type: "state", State: &st}); err != nil {
				slog.Debug("WebSocket write error", "error", err)
				return
			}
		}
	}
}

func (s *Server) inputLoop(ctx context.Context, ws *websocket.Conn, sess *session.Session) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				slog.Warn("WebSocket read error", "error", err, "session_id", sess.ID())
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = writeJSON(ctx, ws, serverMessage{Type: "error", Error: "invalid message"})
			continue
		}

		switch msg.Type {
		case "message":
			if err := sess.Submit(msg.Text); err != nil {
				if errors.Is(err, session.ErrClosed) {
					return
				}
				_ = writeJSON(ctx, ws, serverMessage{Type: "error", Error: err.Error()})
			}
		case "panel":
			if msg.Open == nil {
				sess.TogglePanel()
			} else {
				sess.SetPanel(*msg.Open)
			}
		case "seed":
			sess.SeedQuestion(msg.Text, msg.CourseID)
		case "course":
			sess.SetCourse(msg.CourseID)
		case "interaction":
			sess.Touch()
		case "clear":
			sess.Clear()
		case "ping":
			_ = writeJSON(ctx, ws, serverMessage{Type: "pong"})
		default:
			_ = writeJSON(ctx, ws, serverMessage{Type: "error", Error: "unknown message type"})
		}
	}
}

func writeJSON(ctx context.Context, ws *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}
