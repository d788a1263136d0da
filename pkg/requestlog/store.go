package requestlog

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Recorder is the minimal interface for recording dispatched calls.
type Recorder interface {
	Record(entry *Entry)
}

// MemoryStore is a bounded, thread-safe in-memory call history. When the
// bound is reached the oldest entries are dropped first.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	max     int
}

// DefaultMaxEntries bounds a sandbox's history unless configured otherwise.
const DefaultMaxEntries = 1000

// NewMemoryStore creates a store holding at most max entries. A max of 0
// or less selects DefaultMaxEntries.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &MemoryStore{max: max}
}

// Record appends an entry, assigning an ID if it has none.
func (s *MemoryStore) Record(entry *Entry) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.max {
		s.entries = s.entries[len(s.entries)-s.max:]
	}
}

// Get retrieves an entry by ID. Returns nil if not found.
func (s *MemoryStore) Get(id string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// List returns entries in recording order, oldest first, optionally
// filtered. A nil filter returns everything.
func (s *MemoryStore) List(filter *Filter) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Entry
	for _, e := range s.entries {
		if !matchesFilter(e, filter) {
			continue
		}
		result = append(result, e)
		if filter != nil && filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result
}

// Count returns the number of stored entries.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func matchesFilter(e *Entry, f *Filter) bool {
	if f == nil {
		return true
	}
	if f.Method != "" && e.Method != f.Method {
		return false
	}
	if f.PathPrefix != "" && !strings.HasPrefix(e.Path, f.PathPrefix) {
		return false
	}
	if f.RouteKey != "" && e.RouteKey != f.RouteKey {
		return false
	}
	if f.Errored != nil && (e.Error != "") != *f.Errored {
		return false
	}
	return true
}

// Ensure MemoryStore implements Recorder.
var _ Recorder = (*MemoryStore)(nil)
