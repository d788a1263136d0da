package route

import (
	"sort"
	"sync"
)

// Table is a thread-safe route table. Reads during dispatch always go
// through Snapshot, so a mutation can only affect future dispatches, never
// one already in flight.
type Table struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	nextSeq uint64
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]*Entry),
	}
}

// Put inserts or replaces the handler registered under key. Key validity
// is not checked here: a malformed key registers fine and surfaces as
// "never matches" at dispatch time.
func (t *Table) Put(key string, h Handler) {
	t.PutWith(key, h, nil)
}

// PutWith is Put with extra match criteria attached to the route.
// Replacing an existing key keeps its original registration position.
func (t *Table) PutWith(key string, h Handler, c *Criteria) {
	if c.IsEmpty() {
		c = nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	seq := t.nextSeq
	if prev, ok := t.entries[key]; ok {
		seq = prev.Seq
	} else {
		t.nextSeq++
	}
	t.entries[key] = &Entry{Key: key, Handler: h, Criteria: c, Seq: seq}
}

// Delete removes the entry under key. Removing an absent key is a no-op.
func (t *Table) Delete(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// Clear removes all entries.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]*Entry)
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Keys returns the registered route keys in registration order.
func (t *Table) Keys() []string {
	snapshot := t.Snapshot()
	keys := make([]string, len(snapshot))
	for i, e := range snapshot {
		keys[i] = e.Key
	}
	return keys
}

// Snapshot returns a copy of the current entries sorted by registration
// sequence. The copy is immutable input to a single dispatch: concurrent
// Put/Delete/Clear calls cannot change the outcome of a match already
// under way.
func (t *Table) Snapshot() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		snapshot = append(snapshot, *e)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Seq < snapshot[j].Seq
	})
	return snapshot
}
