package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets with a short description, in display order.
var Presets = []struct {
	Preset      DifficultyPreset
	Description string
}{
	{DifficultyEasy, "Slower notes, gentler speed-up, 5 lives"},
	{DifficultyNormal, "Configured speed and lives"},
	{DifficultyHard, "Faster notes, steeper speed-up, 2 lives"},
	{DifficultyFixed, "Speed never increases"},
}

// ParsePreset parses a preset name. An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and the empty preset leave the config unchanged.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	e := &cfg.Engine
	switch preset {
	case DifficultyEasy:
		e.Speed.Base *= 0.7
		e.Speed.Growth = 0.15
		e.Lives.Max = 5
		e.Lives.Start = 5
	case DifficultyHard:
		e.Speed.Base *= 1.4
		e.Speed.Growth = 0.3
		e.Lives.Max = 2
		e.Lives.Start = 2
	case DifficultyFixed:
		e.Scoring.LevelEvery = 0
		e.Speed.Growth = 0
	}
}
