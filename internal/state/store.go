// Package state holds the shared view of the monitored DDS network.
//
// A Store has exactly one writer context (the feed) and one reader context
// (the dashboard). Readers never borrow store memory: Snapshot hands out
// owned copies that stay valid after the lock is released.
package state

import (
	stderrors "errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ddstop/ddstop/internal/errors"
)

// ErrPoisoned is the cause carried by store errors once a producer panicked
// while holding the write lock.
var ErrPoisoned = stderrors.New("state store poisoned")

// Store is the mutex-guarded set of discovered entities and abnormalities.
type Store struct {
	mu            sync.RWMutex
	writers       map[GUID]Writer
	readers       map[GUID]Reader
	topics        map[string]Topic
	abnormalities []Abnormality
	seq           uint64
	poisoned      error
	now           func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		writers: make(map[GUID]Writer),
		readers: make(map[GUID]Reader),
		topics:  make(map[string]Topic),
		now:     time.Now,
	}
}

// Snapshot copies the current contents under the read lock.
// Once the store is poisoned it returns a STORE error wrapping ErrPoisoned.
func (s *Store) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.poisoned != nil {
		return Snapshot{}, errors.WrapWithCode(s.poisoned, errors.ErrStore,
			"State store is unavailable",
			"The feed crashed while updating state; restart ddstop to recover")
	}

	snap := Snapshot{
		Writers:       make([]Writer, 0, len(s.writers)),
		Readers:       make([]Reader, 0, len(s.readers)),
		Topics:        make([]Topic, 0, len(s.topics)),
		Abnormalities: make([]Abnormality, 0, len(s.abnormalities)),
		TakenAt:       s.now(),
	}
	for _, w := range s.writers {
		snap.Writers = append(snap.Writers, w)
	}
	for _, r := range s.readers {
		snap.Readers = append(snap.Readers, r)
	}
	for _, t := range s.topics {
		snap.Topics = append(snap.Topics, t)
	}
	for _, a := range s.abnormalities {
		snap.Abnormalities = append(snap.Abnormalities, cloneAbnormality(a))
	}
	return snap, nil
}

// Update runs fn with exclusive access to the store. A panic inside fn
// poisons the store and is returned as an error; later Snapshot and Update
// calls fail until the process restarts.
func (s *Store) Update(fn func(tx *Tx)) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned != nil {
		return errors.WrapWithCode(s.poisoned, errors.ErrStore,
			"State store is unavailable", "")
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = fmt.Errorf("%w: update panicked: %v", ErrPoisoned, r)
			err = errors.WrapWithCode(s.poisoned, errors.ErrStore,
				"State update failed", "")
		}
	}()

	fn(&Tx{s: s})
	return nil
}

// Poisoned returns the recorded poisoning cause, or nil.
func (s *Store) Poisoned() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.poisoned
}

// Tx is the write handle passed to Update. It must not escape fn.
type Tx struct {
	s *Store
}

// PutWriter inserts or replaces a writer.
func (tx *Tx) PutWriter(w Writer) { tx.s.writers[w.GUID] = w }

// RemoveWriter deletes a writer; missing GUIDs are ignored.
func (tx *Tx) RemoveWriter(id GUID) { delete(tx.s.writers, id) }

// PutReader inserts or replaces a reader.
func (tx *Tx) PutReader(r Reader) { tx.s.readers[r.GUID] = r }

// RemoveReader deletes a reader; missing GUIDs are ignored.
func (tx *Tx) RemoveReader(id GUID) { delete(tx.s.readers, id) }

// PutTopic inserts or replaces a topic.
func (tx *Tx) PutTopic(t Topic) { tx.s.topics[t.Name] = t }

// RemoveTopic deletes a topic; missing names are ignored.
func (tx *Tx) RemoveTopic(name string) { delete(tx.s.topics, name) }

// Writer looks up a writer by GUID.
func (tx *Tx) Writer(id GUID) (Writer, bool) {
	w, ok := tx.s.writers[id]
	return w, ok
}

// Reader looks up a reader by GUID.
func (tx *Tx) Reader(id GUID) (Reader, bool) {
	r, ok := tx.s.readers[id]
	return r, ok
}

// Writers returns the GUIDs of all writers, sorted.
func (tx *Tx) Writers() []GUID { return sortedKeys(tx.s.writers) }

// Readers returns the GUIDs of all readers, sorted.
func (tx *Tx) Readers() []GUID { return sortedKeys(tx.s.readers) }

// AddAbnormality appends a record and returns its sequence number.
func (tx *Tx) AddAbnormality(a Abnormality) uint64 {
	tx.s.seq++
	a.Seq = tx.s.seq
	tx.s.abnormalities = append(tx.s.abnormalities, cloneAbnormality(a))
	return a.Seq
}

// Clear removes every entity and abnormality.
func (tx *Tx) Clear() {
	tx.s.writers = make(map[GUID]Writer)
	tx.s.readers = make(map[GUID]Reader)
	tx.s.topics = make(map[string]Topic)
	tx.s.abnormalities = nil
}

// PruneAbnormalities drops records older than olderThan (when non-zero) and
// then keeps at most maxCount of the newest (when maxCount > 0). It returns
// the number of records removed.
func (tx *Tx) PruneAbnormalities(olderThan time.Time, maxCount int) int {
	before := len(tx.s.abnormalities)

	kept := tx.s.abnormalities[:0]
	for _, a := range tx.s.abnormalities {
		if !olderThan.IsZero() && a.When.Before(olderThan) {
			continue
		}
		kept = append(kept, a)
	}

	if maxCount > 0 && len(kept) > maxCount {
		sort.Slice(kept, func(i, j int) bool {
			if !kept[i].When.Equal(kept[j].When) {
				return kept[i].When.Before(kept[j].When)
			}
			return kept[i].Seq < kept[j].Seq
		})
		kept = append([]Abnormality(nil), kept[len(kept)-maxCount:]...)
	}

	tx.s.abnormalities = kept
	return before - len(kept)
}

func sortedKeys[V any](m map[GUID]V) []GUID {
	keys := make([]GUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

func cloneAbnormality(a Abnormality) Abnormality {
	if a.WriterID != nil {
		id := *a.WriterID
		a.WriterID = &id
	}
	if a.ReaderID != nil {
		id := *a.ReaderID
		a.ReaderID = &id
	}
	if a.TopicName != nil {
		name := *a.TopicName
		a.TopicName = &name
	}
	return a
}
