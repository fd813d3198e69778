package hospital

import "sync"

// Sessions tracks open admission wizards by id so HTTP requests can be
// routed back to the wizard instance that owns their draft
type Sessions struct {
	mu      sync.RWMutex
	wizards map[string]*Wizard
}

// NewSessions creates an empty session store
func NewSessions() *Sessions {
	return &Sessions{wizards: make(map[string]*Wizard)}
}

// Put registers a wizard under its id
func (s *Sessions) Put(w *Wizard) {
	s.mu.Lock()
	s.wizards[w.ID()] = w
	s.mu.Unlock()
}

// Get returns the wizard with the given id
func (s *Sessions) Get(id string) (*Wizard, bool) {
	s.mu.RLock()
	w, ok := s.wizards[id]
	s.mu.RUnlock()
	return w, ok
}

// Remove drops a wizard from the store once it is committed or cancelled
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	delete(s.wizards, id)
	s.mu.Unlock()
}
