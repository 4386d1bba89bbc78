// Package engine implements the timed note-identification engine.
// A challenge spawns after a short delay, travels toward a deadline line and is
// resolved exactly once: by a correct answer, an incorrect answer or expiry.
// The engine performs no I/O; renderers and the journal consume its event stream.
package engine

import "time"

// Phase is the engine's position in the spawn/answer/result cycle.
type Phase int

const (
	PhaseIdle            Phase = iota // Start has not been called yet
	PhaseAwaitingSpawn                // No challenge; spawn timer armed
	PhaseChallengeActive              // Challenge traveling, answers accepted
	PhaseShowingResult                // Resolved; dwelling before the next cycle
	PhaseGameOver                     // Terminal until Reset or Start
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseAwaitingSpawn:
		return "AwaitingSpawn"
	case PhaseChallengeActive:
		return "ChallengeActive"
	case PhaseShowingResult:
		return "ShowingResult"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ChallengeID uniquely identifies one spawned challenge.
type ChallengeID string

// Answer is a classification value. The engine only compares answers for equality.
type Answer string

// Challenge is the single in-flight item to be classified.
type Challenge struct {
	ID        ChallengeID
	Answer    Answer  // Expected answer
	Label     string  // Provider display text (e.g. "G4")
	Progress  float64 // 0 = just spawned, 1 = reached the deadline line
	SpawnedAt time.Time
	PausedFor time.Duration // Time spent paused while active
	Outcome   Outcome       // OutcomeNone until resolved
	Given     Answer        // Submitted answer, empty for expiry
}

// Resolved reports whether the challenge has a terminal outcome.
func (c *Challenge) Resolved() bool {
	return c.Outcome != OutcomeNone
}

// State is the engine's complete state. The engine owns it exclusively;
// callers only ever see copies returned by Engine.Snapshot.
type State struct {
	Phase  Phase
	Active *Challenge // Non-nil iff Phase is ChallengeActive or ShowingResult
	Standing

	SpawnGeneration uint64 // Bumped on every entry to AwaitingSpawn
	ResolutionLock  bool   // Set by the AnswerGate, cleared on spawn
	Paused          bool
}

// clone returns a deep copy safe to hand to other goroutines.
func (s State) clone() State {
	if s.Active != nil {
		ch := *s.Active
		s.Active = &ch
	}
	return s
}
