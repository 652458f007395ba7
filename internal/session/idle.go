package session

import "time"

// Touch records learner activity and hides the help prompt.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idle == 0 {
		return
	}
	helped := s.needsHelpLocked()
	s.idle = 0
	if helped {
		s.notifyLocked()
	}
}

// NeedsHelp reports whether the proactive help prompt should show.
func (s *Session) NeedsHelp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.needsHelpLocked()
}

func (s *Session) needsHelpLocked() bool {
	return s.idle > s.cfg.IdleThreshold && !s.panelOpen
}

func (s *Session) idleLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.IdleTick)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.tickIdle()
		}
	}
}

// tickIdle advances the idle counter while the panel is closed.
func (s *Session) tickIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panelOpen || s.closed {
		return
	}
	before := s.needsHelpLocked()
	s.idle++
	if s.needsHelpLocked() != before {
		s.notifyLocked()
	}
}
