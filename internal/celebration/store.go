package celebration

import (
	"sort"
	"sync"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// StateSetter writes the current celebration state.
type StateSetter interface {
	SetCelebrationState(state domain.CelebrationState)
}

// CelebratedSet tracks which timezones have already completed celebration
// for the current target, scoped to the lifetime of one view.
type CelebratedSet interface {
	MarkCelebrated(timezone string)
	HasCelebrated(timezone string) bool
}

// CompletionSetter writes the completion flag consumed by the tick loop's
// completion predicate.
type CompletionSetter interface {
	SetComplete(complete bool)
}

// Resetter returns the view to the counting state. Call sites that only
// reset (a timezone switch back to a future target) may depend on this
// interface alone.
type Resetter interface {
	ResetCelebration()
}

// Store is the full capability set the state machine requires.
type Store interface {
	StateSetter
	CelebratedSet
	CompletionSetter
	Resetter
}

// MemoryStore is an in-memory Store for callers without their own state
// store. One instance backs exactly one countdown view; nothing is shared
// between views and nothing survives the process.
//
// The store is safe for concurrent use: the tick loop reads the completion
// flag from its own goroutine while transitions run on the caller's.
type MemoryStore struct {
	// mu protects all fields below.
	mu sync.Mutex
	// state is the current celebration state.
	state domain.CelebrationState
	// complete mirrors the tick loop's completion predicate.
	complete bool
	// celebrated holds the timezones already celebrated for this target.
	celebrated map[string]struct{}
}

// NewMemoryStore creates a store in the initial counting state.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state:      domain.StateCounting,
		celebrated: make(map[string]struct{}),
	}
}

// SetCelebrationState records the current celebration state.
func (s *MemoryStore) SetCelebrationState(state domain.CelebrationState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

// State returns the current celebration state.
func (s *MemoryStore) State() domain.CelebrationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// MarkCelebrated adds a timezone to the celebrated set.
func (s *MemoryStore) MarkCelebrated(timezone string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.celebrated[timezone] = struct{}{}
}

// HasCelebrated reports whether a timezone already celebrated.
func (s *MemoryStore) HasCelebrated(timezone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.celebrated[timezone]

	return ok
}

// Celebrated returns the celebrated timezones in sorted order, for
// persistence snapshots.
func (s *MemoryStore) Celebrated() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	zones := make([]string, 0, len(s.celebrated))
	for zone := range s.celebrated {
		zones = append(zones, zone)
	}

	sort.Strings(zones)

	return zones
}

// RestoreCelebrated seeds the celebrated set, e.g. from a persisted snapshot.
func (s *MemoryStore) RestoreCelebrated(zones []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, zone := range zones {
		s.celebrated[zone] = struct{}{}
	}
}

// SetComplete records the completion flag.
func (s *MemoryStore) SetComplete(complete bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.complete = complete
}

// IsComplete reports the completion flag. It satisfies the tick loop's
// completion predicate signature.
func (s *MemoryStore) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.complete
}

// ResetCelebration returns the store to counting with the completion flag
// cleared. The celebrated set is kept: it guards animation replay for the
// lifetime of the view.
func (s *MemoryStore) ResetCelebration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.StateCounting
	s.complete = false
}
