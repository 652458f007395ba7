package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/session"
)

type createSessionRequest struct {
	CourseID string `json:"course_id"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type panelRequest struct {
	Open *bool `json:"open"`
}

type seedRequest struct {
	Text     string `json:"text"`
	CourseID string `json:"course_id"`
}

type courseSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Credits     int    `json:"credits"`
	Videos      int    `json:"videos"`
	Materials   int    `json:"materials"`
	Questions   int    `json:"questions"`
}

func summarize(c learner.Course) courseSummary {
	return courseSummary{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  learner.DifficultyLabel(c.Difficulty),
		Credits:     c.Credits,
		Videos:      len(c.Videos),
		Materials:   len(c.Materials),
		Questions:   len(c.Questions),
	}
}

// decode reads an optional JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := s.sessions.Get(chi.URLParam(r, "id"))
	if sess == nil {
		Error(w, http.StatusNotFound, "session not found")
	}
	return sess
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	var (
		courses []learner.Course
		err     error
	)
	if term := r.URL.Query().Get("search"); term != "" {
		courses, err = s.courses.Search(r.Context(), term)
	} else {
		courses, err = s.courses.List(r.Context())
	}
	if err != nil {
		slog.Error("Failed to list courses", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list courses")
		return
	}

	out := make([]courseSummary, len(courses))
	for i, c := range courses {
		out[i] = summarize(c)
	}
	JSON(w, http.StatusOK, out)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.courses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Failed to load course", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load course")
		return
	}
	if c == nil {
		Error(w, http.StatusNotFound, "course not found")
		return
	}
	JSON(w, http.StatusOK, summarize(*c))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := s.sessions.Create(req.CourseID)
	slog.Info("Session created", "session_id", sess.ID(), "course_id", req.CourseID)
	JSON(w, http.StatusCreated, sess.State())
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	if sess := s.lookup(w, r); sess != nil {
		JSON(w, http.StatusOK, sess.State())
	}
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	var req messageRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch err := sess.Submit(req.Text); {
	case errors.Is(err, session.ErrEmptyMessage):
		Error(w, http.StatusBadRequest, "message is empty")
	case errors.Is(err, session.ErrClosed):
		Error(w, http.StatusGone, "session closed")
	case err != nil:
		Error(w, http.StatusInternalServerError, err.Error())
	default:
		JSON(w, http.StatusAccepted, sess.State())
	}
}

func (s *Server) setPanel(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	var req panelRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Open == nil {
		sess.TogglePanel()
	} else {
		sess.SetPanel(*req.Open)
	}
	JSON(w, http.StatusOK, sess.State())
}

func (s *Server) seedQuestion(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	var req seedRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess.SeedQuestion(req.Text, req.CourseID)
	JSON(w, http.StatusOK, sess.State())
}

func (s *Server) touch(w http.ResponseWriter, r *http.Request) {
	if sess := s.lookup(w, r); sess != nil {
		sess.Touch()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	if sess := s.lookup(w, r); sess != nil {
		sess.Clear()
		JSON(w, http.StatusOK, sess.State())
	}
}
