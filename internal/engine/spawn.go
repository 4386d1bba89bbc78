package engine

import (
	"sync"
	"time"
)

// SpawnScheduler arranges exactly one delayed spawn per AwaitingSpawn entry.
//
// Each Arm records the generation it was armed for. When the timer fires it
// takes the owner's lock and compares that generation with the current one;
// a mismatch means the phase was re-entered in the meantime and the firing
// is discarded without touching any state.
type SpawnScheduler struct {
	clock   Clock
	mu      sync.Locker
	current func() uint64

	timer     Timer
	armed     uint64 // Generation of the outstanding timer
	fired     uint64 // Last generation that produced a spawn
	discarded uint64 // Stale firings dropped
}

// NewSpawnScheduler creates a scheduler. mu is the owner's state lock and
// current reads the owner's generation; current is only called with mu held.
func NewSpawnScheduler(clock Clock, mu sync.Locker, current func() uint64) *SpawnScheduler {
	return &SpawnScheduler{
		clock:   clock,
		mu:      mu,
		current: current,
	}
}

// Arm schedules onFire to run after delay for the given generation,
// replacing any outstanding timer. Must be called with the owner's lock held.
// onFire runs with the owner's lock held.
func (s *SpawnScheduler) Arm(generation uint64, delay time.Duration, onFire func(generation uint64)) {
	s.Cancel()
	s.armed = generation
	s.timer = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fire(generation, onFire)
	})
}

func (s *SpawnScheduler) fire(generation uint64, onFire func(uint64)) {
	// A cancelled timer can still fire if it was already running when Stop was called
	if generation != s.current() || generation == s.fired {
		s.discarded++
		return
	}
	s.fired = generation
	if s.armed == generation {
		s.timer = nil
	}
	onFire(generation)
}

// Cancel stops the outstanding timer, if any. Must be called with the owner's lock held.
func (s *SpawnScheduler) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Armed reports whether a timer is outstanding. Must be called with the owner's lock held.
func (s *SpawnScheduler) Armed() bool {
	return s.timer != nil
}

// Discarded returns how many stale firings were dropped. Must be called with the owner's lock held.
func (s *SpawnScheduler) Discarded() uint64 {
	return s.discarded
}
