package notes

import "sync"

// Store holds the public notes scratchpad. Notes are shared by every caller,
// have no owner, and live only as long as the process.
type Store interface {
	Add(text string)
	List() []string
}

type memoryStore struct {
	mu    sync.Mutex
	notes []string
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Add(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, text)
}

func (s *memoryStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.notes))
	copy(out, s.notes)
	return out
}
