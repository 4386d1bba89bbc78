package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is returned by Start when the level configuration is unusable.
	ErrInvalidConfig = errors.New("invalid level config")

	// ErrProviderEmpty is returned by Start when the provider cannot produce a challenge.
	ErrProviderEmpty = errors.New("challenge provider produced no challenge")

	// ErrNotStarted is returned by Reset before the first Start.
	ErrNotStarted = errors.New("engine not started")

	// ErrStopped is returned by commands issued after Stop.
	ErrStopped = errors.New("engine stopped")
)

// Timing holds the engine's fixed delays.
type Timing struct {
	SpawnDelay    time.Duration // Delay between entering AwaitingSpawn and the spawn
	CorrectDwell  time.Duration // Result display after a correct answer
	RevealDwell   time.Duration // Result display after a miss when RevealAnswer is set
	RevealAnswer  bool          // Hold misses on screen long enough to show the expected answer
	MaxFrameDelta time.Duration // Cap for a single tick's elapsed time
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		SpawnDelay:    300 * time.Millisecond,
		CorrectDwell:  300 * time.Millisecond,
		RevealDwell:   1500 * time.Millisecond,
		RevealAnswer:  true,
		MaxFrameDelta: MaxFrameDelta,
	}
}

// DwellFor returns how long the result of outcome stays on screen.
func (t Timing) DwellFor(outcome Outcome) time.Duration {
	if outcome.Miss() && t.RevealAnswer {
		return t.RevealDwell
	}
	return t.CorrectDwell
}

// LevelConfig is everything Start needs to run a game.
type LevelConfig struct {
	Name             string
	DeadlineDistance float64 // Distance a challenge travels before expiring
	Rules            Rules
	Timing           Timing
}

// DefaultLevelConfig returns the standard configuration.
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		Name:             "default",
		DeadlineDistance: 120,
		Rules:            DefaultRules(),
		Timing:           DefaultTiming(),
	}
}

// Validate checks the configuration before play starts.
func (c LevelConfig) Validate() error {
	if c.DeadlineDistance <= 0 {
		return fmt.Errorf("%w: deadline distance must be positive, got %v", ErrInvalidConfig, c.DeadlineDistance)
	}
	if c.Timing.SpawnDelay < 0 || c.Timing.CorrectDwell < 0 || c.Timing.RevealDwell < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidConfig)
	}
	return c.Rules.Validate()
}

// Prompt is one challenge produced by a Provider.
type Prompt struct {
	Answer Answer // Expected answer; must not be empty
	Label  string // Display text, opaque to the engine
}

// Provider supplies challenges. The engine treats it as an opaque collaborator.
type Provider interface {
	Next(cfg LevelConfig) (Prompt, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(cfg LevelConfig) (Prompt, error)

// Next calls f(cfg).
func (f ProviderFunc) Next(cfg LevelConfig) (Prompt, error) {
	return f(cfg)
}
