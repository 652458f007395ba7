package session

import "strings"

// TogglePanel flips the panel between open and closed.
func (s *Session) TogglePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPanelLocked(!s.panelOpen)
}

// SetPanel opens or closes the panel.
func (s *Session) SetPanel(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPanelLocked(open)
}

func (s *Session) setPanelLocked(open bool) {
	s.panelOpen = open
	s.idle = 0
	s.notifyLocked()
}

// SetCourse changes the course the conversation is scoped to.
func (s *Session) SetCourse(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courseID = courseID
	s.notifyLocked()
}

// SeedQuestion opens the panel with a prefilled question, optionally
// scoping the session to a course. The question waits until TakeSeed.
func (s *Session) SeedQuestion(text, courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = strings.TrimSpace(text)
	if courseID != "" {
		s.courseID = courseID
	}
	s.setPanelLocked(true)
}

// TakeSeed returns the pending prefilled question and clears it.
func (s *Session) TakeSeed() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := s.seed
	if seed == "" {
		return "", false
	}
	s.seed = ""
	s.notifyLocked()
	return seed, true
}
