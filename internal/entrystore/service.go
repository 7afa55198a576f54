package entrystore

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/healthy-living/internal/model"
)

// EntryIDPrefix prefixes every generated entry ID
const EntryIDPrefix = "entry-"

// Service is the in-memory entry store
type Service struct {
	mu      sync.RWMutex
	entries []model.Entry
	nextSeq uint64

	// emitMu keeps mutation plus notification atomic, so subscribers see
	// snapshots in exactly the order mutations were applied.
	emitMu      sync.Mutex
	subsMu      sync.Mutex
	subscribers map[int]func([]model.Entry)
	nextSubID   int

	now func() time.Time
}

// NewService creates an empty entry store
func NewService() *Service {
	return &Service{
		entries:     make([]model.Entry, 0),
		subscribers: make(map[int]func([]model.Entry)),
		now:         time.Now,
	}
}

// Add validates both fields and appends a new entry to the end of the
// collection. Identical inputs produce distinct entries.
func (s *Service) Add(name, imageReference string) (model.Entry, error) {
	if err := model.ValidateFields(name, imageReference); err != nil {
		return model.Entry{}, err
	}

	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.nextSeq++
	entry := model.Entry{
		ID:             generateEntryID(),
		Seq:            s.nextSeq,
		Name:           name,
		ImageReference: imageReference,
		CreatedAt:      s.now(),
	}
	duplicate := s.hasContentLocked(entry)
	s.entries = append(s.entries, entry)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	log.Printf("Entry added: id=%s seq=%d name=%q duplicate=%v", entry.ID, entry.Seq, entry.Name, duplicate)

	s.notify(snapshot)
	return entry, nil
}

// Remove deletes the entry with the given ID. The order of the remaining
// entries is unchanged.
func (s *Service) Remove(id string) error {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}

	remaining := make([]model.Entry, 0, len(s.entries)-1)
	remaining = append(remaining, s.entries[:idx]...)
	remaining = append(remaining, s.entries[idx+1:]...)
	s.entries = remaining
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	log.Printf("Entry removed: id=%s remaining=%d", id, len(snapshot))

	s.notify(snapshot)
	return nil
}

// Get returns an entry by ID
func (s *Service) Get(id string) (model.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return model.Entry{}, false
	}
	return s.entries[idx], true
}

// Snapshot returns a copy of the collection in insertion order
func (s *Service) Snapshot() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of entries
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Subscribe registers a callback invoked after each mutation with the
// snapshot taken right after it
func (s *Service) Subscribe(fn func([]model.Entry)) func() {
	if fn == nil {
		return func() {}
	}

	s.subsMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subscribers, id)
			s.subsMu.Unlock()
		})
	}
}

// Watch registers fn like Subscribe and first calls it with the current
// snapshot. Both happen under the emit lock, so no mutation can slip in
// between the initial snapshot and the subscription.
func (s *Service) Watch(fn func([]model.Entry)) func() {
	if fn == nil {
		return func() {}
	}

	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	unsubscribe := s.Subscribe(fn)
	fn(s.Snapshot())
	return unsubscribe
}

// notify calls every subscriber with its own copy of the snapshot
func (s *Service) notify(snapshot []model.Entry) {
	s.subsMu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	// registration order
	sort.Ints(ids)
	fns := make([]func([]model.Entry), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(cloneEntries(snapshot))
	}
}

func (s *Service) indexLocked(id string) int {
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// hasContentLocked reports whether an entry with the same content exists
func (s *Service) hasContentLocked(entry model.Entry) bool {
	for _, existing := range s.entries {
		if existing.SameContent(entry) {
			return true
		}
	}
	return false
}

func (s *Service) snapshotLocked() []model.Entry {
	return cloneEntries(s.entries)
}

func cloneEntries(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	return out
}

// generateEntryID generates a unique entry ID
func generateEntryID() string {
	return EntryIDPrefix + uuid.New().String()
}
