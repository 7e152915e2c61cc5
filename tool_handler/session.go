package toolhandler

import "sync"

// Session tracks which application entities a side-effecting tool has already
// touched within one orchestration run. This is domain-level dedup, distinct
// from the orchestrator's tool-call-id dedup: a model may issue two different
// calls that both try to persist the same logical record.
type Session struct {
	used map[string]struct{}
	mtx  sync.Mutex
}

// Used reports whether key has been marked without consuming it.
func (s *Session) Used(key string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, ok := s.used[key]

	return ok
}

// FirstUse marks key as used and reports whether this was the first use.
func (s *Session) FirstUse(key string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.used[key]; ok {
		return false
	}

	s.used[key] = struct{}{}

	return true
}

func NewSession() *Session {
	return &Session{
		used: map[string]struct{}{},
		mtx:  sync.Mutex{},
	}
}
