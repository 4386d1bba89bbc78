// Package config provides YAML-based configuration loading and difficulty
// presets for staff-wars.
package config

import (
	"fmt"

	"github.com/vovakirdan/staff-wars/internal/engine"
	"github.com/vovakirdan/staff-wars/internal/notes"
)

// Config contains all configuration for a game.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Notes  NotesConfig  `yaml:"notes"`
}

// EngineConfig defines speed, lives, scoring and timing.
type EngineConfig struct {
	DeadlineDistance float64       `yaml:"deadline_distance"` // Distance a note travels before it expires
	Speed            SpeedConfig   `yaml:"speed"`
	Lives            LivesConfig   `yaml:"lives"`
	Scoring          ScoringConfig `yaml:"scoring"`
	Timing           TimingConfig  `yaml:"timing"`
}

// SpeedConfig defines note speed progression.
type SpeedConfig struct {
	Base   float64 `yaml:"base"`   // Level 1 speed in distance units per second
	Growth float64 `yaml:"growth"` // Compound increase per level (0.25 = +25%)
}

// LivesConfig defines the life pool.
type LivesConfig struct {
	Max        int `yaml:"max"`
	Start      int `yaml:"start"`       // 0 = max
	ExtraEvery int `yaml:"extra_every"` // Score multiple that restores a life; 0 disables
}

// ScoringConfig defines points and leveling.
type ScoringConfig struct {
	PointsPerCorrect int `yaml:"points_per_correct"`
	LevelEvery       int `yaml:"level_every"` // 0 disables leveling
	LevelBonus       int `yaml:"level_bonus"`
}

// TimingConfig defines the engine's delays.
type TimingConfig struct {
	SpawnDelay    Duration `yaml:"spawn_delay"`
	CorrectDwell  Duration `yaml:"correct_dwell"`
	RevealDwell   Duration `yaml:"reveal_dwell"`
	RevealAnswer  bool     `yaml:"reveal_answer"`
	MaxFrameDelta Duration `yaml:"max_frame_delta"`
}

// NotesConfig defines which notes are drawn.
type NotesConfig struct {
	Clef   string `yaml:"clef"`
	Range  string `yaml:"range"` // Optional preset name; overrides min/max
	Min    string `yaml:"min"`
	Max    string `yaml:"max"`
	Filter string `yaml:"filter"` // all, lines or spaces
}

// ToLevelConfig converts the engine section to an engine.LevelConfig.
func (c Config) ToLevelConfig(name string) engine.LevelConfig {
	e := c.Engine
	return engine.LevelConfig{
		Name:             name,
		DeadlineDistance: e.DeadlineDistance,
		Rules: engine.Rules{
			BaseSpeed:         e.Speed.Base,
			SpeedGrowth:       e.Speed.Growth,
			MaxLives:          e.Lives.Max,
			StartLives:        e.Lives.Start,
			ExtraLifeInterval: e.Lives.ExtraEvery,
			LevelEvery:        e.Scoring.LevelEvery,
			PointsPerCorrect:  e.Scoring.PointsPerCorrect,
			LevelBonus:        e.Scoring.LevelBonus,
		},
		Timing: engine.Timing{
			SpawnDelay:    e.Timing.SpawnDelay.Std(),
			CorrectDwell:  e.Timing.CorrectDwell.Std(),
			RevealDwell:   e.Timing.RevealDwell.Std(),
			RevealAnswer:  e.Timing.RevealAnswer,
			MaxFrameDelta: e.Timing.MaxFrameDelta.Std(),
		},
	}
}

// NoteRange converts the notes section to a notes.Range.
func (c Config) NoteRange() (notes.Range, error) {
	n := c.Notes

	clef, err := notes.ParseClef(n.Clef)
	if err != nil {
		return notes.Range{}, fmt.Errorf("config: notes: %w", err)
	}
	filter, err := notes.ParseFilter(n.Filter)
	if err != nil {
		return notes.Range{}, fmt.Errorf("config: notes: %w", err)
	}

	lo, hi := n.Min, n.Max
	if n.Range != "" {
		p, ok := notes.FindRangePreset(n.Range)
		if !ok {
			return notes.Range{}, fmt.Errorf("config: notes: unknown range preset %q", n.Range)
		}
		lo, hi = p.Min, p.Max
	}

	r := notes.DefaultRange(clef)
	r.Filter = filter
	if lo != "" {
		if r.Min, err = notes.ParseNote(lo); err != nil {
			return notes.Range{}, fmt.Errorf("config: notes: min: %w", err)
		}
	}
	if hi != "" {
		if r.Max, err = notes.ParseNote(hi); err != nil {
			return notes.Range{}, fmt.Errorf("config: notes: max: %w", err)
		}
	}
	return r, nil
}

// Validate checks that the configuration can start a game.
func (c Config) Validate() error {
	if err := c.ToLevelConfig("validate").Validate(); err != nil {
		return fmt.Errorf("config: engine: %w", err)
	}
	r, err := c.NoteRange()
	if err != nil {
		return err
	}
	if _, err := r.Notes(); err != nil {
		return fmt.Errorf("config: notes: %w", err)
	}
	return nil
}
