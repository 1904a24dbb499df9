package staging

import (
	"sync"

	"thali/internal/items"
)

// Store holds the most recently parsed import batch between the separate
// import, placeholder-download, image-upload, and commit requests. One
// store is shared process-wide; Put replaces the whole batch and Get never
// observes a half-applied Put.
type Store struct {
	mu    sync.RWMutex
	batch []items.Item
}

func NewStore() *Store {
	return &Store{}
}

// Put replaces the held batch. Last writer wins; no merging.
func (s *Store) Put(batch []items.Item) {
	copied := make([]items.Item, len(batch))
	copy(copied, batch)

	s.mu.Lock()
	s.batch = copied
	s.mu.Unlock()
}

// Get returns the current batch in the exact order it was Put, or an
// empty slice when nothing is staged.
func (s *Store) Get() []items.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]items.Item, len(s.batch))
	copy(copied, s.batch)
	return copied
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.batch = nil
	s.mu.Unlock()
}
