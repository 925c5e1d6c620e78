package feed

import (
	"sync"

	"snapfix/types"
)

// DefaultDroppedLimit is how many records that left the feed a Store remembers.
const DefaultDroppedLimit = 256

// Store holds the latest State for concurrent readers and implements Handler
// so a Poller can feed it directly.
type Store struct {
	mu    sync.RWMutex
	state State

	// dropped keeps the last version of records that left the feed so a
	// viewer can keep displaying such a selection. Oldest drops are evicted
	// first once limit is reached.
	dropped map[string]types.AnalysisRecord
	order   []string
	limit   int
}

// NewStore creates a store holding NewState()
func NewStore() *Store {
	return NewStoreWithLimit(DefaultDroppedLimit)
}

// NewStoreWithLimit creates a store that remembers at most limit dropped
// records. A limit below 1 remembers none.
func NewStoreWithLimit(limit int) *Store {
	return &Store{
		state:   NewState(),
		dropped: make(map[string]types.AnalysisRecord),
		limit:   limit,
	}
}

// PollStarted implements Handler
func (s *Store) PollStarted(string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.BeginFetch()
}

// PollFinished implements Handler
func (s *Store) PollFinished(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Records
	s.state = s.state.Apply(res)
	if res.Err != nil {
		return
	}

	current := make(map[string]struct{}, len(res.Records))
	for _, r := range res.Records {
		current[r.Filename] = struct{}{}
		if _, ok := s.dropped[r.Filename]; ok {
			s.forget(r.Filename)
		}
	}
	for _, r := range prev {
		if _, ok := current[r.Filename]; !ok {
			s.remember(r)
		}
	}
}

// remember records r as dropped, evicting the oldest drops over the limit
func (s *Store) remember(r types.AnalysisRecord) {
	if s.limit < 1 {
		return
	}
	if _, ok := s.dropped[r.Filename]; ok {
		s.forget(r.Filename)
	}
	s.dropped[r.Filename] = r
	s.order = append(s.order, r.Filename)
	for len(s.order) > s.limit {
		delete(s.dropped, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *Store) forget(filename string) {
	delete(s.dropped, filename)
	for i, f := range s.order {
		if f == filename {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
}

// Dropped returns how many records that left the feed are remembered
func (s *Store) Dropped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dropped)
}

// Snapshot returns the current state. States are immutable, so the copy is
// safe to use without the lock.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Lookup finds a record in the current feed, falling back to the last
// version seen before it dropped out.
func (s *Store) Lookup(filename string) (types.AnalysisRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.state.Find(filename); ok {
		return rec, true
	}
	rec, ok := s.dropped[filename]
	return rec, ok
}

// ViewFor returns the state as a viewer with the given selection sees it. An
// empty filename means the viewer has not chosen yet and gets the newest record.
func (s *Store) ViewFor(filename string) State {
	st := s.Snapshot().WithSelected(nil)
	if filename == "" {
		return st.AutoSelect()
	}
	if rec, ok := s.Lookup(filename); ok {
		return st.WithSelected(&rec)
	}
	return st.AutoSelect()
}
