package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/staff-wars/internal/config"
)

// gameFlags select and override the game configuration for play and serve.
type gameFlags struct {
	configPath string
	difficulty string
	clef       string
	min        string
	max        string
	filter     string
	rangeName  string
	noReveal   bool
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to custom config YAML")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&f.clef, "clef", "", "Clef: treble, bass, alto, grand")
	cmd.Flags().StringVar(&f.min, "min", "", "Lowest note, e.g. E4")
	cmd.Flags().StringVar(&f.max, "max", "", "Highest note, e.g. F5")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Notes to draw: all, lines, spaces")
	cmd.Flags().StringVar(&f.rangeName, "range", "", "Range preset: beginner, intermediate, advanced")
	cmd.Flags().BoolVar(&f.noReveal, "no-reveal", false, "Do not reveal the expected note after a miss")
}

// load resolves the configuration: file, then difficulty preset, then note flags.
func (f *gameFlags) load() (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, "", err
	}

	preset, err := config.ParsePreset(f.difficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)

	if f.clef != "" {
		cfg.Notes.Clef = f.clef
		if f.min == "" && f.max == "" && f.rangeName == "" {
			// Another clef's bounds would sit off this staff; use its lines
			cfg.Notes.Min, cfg.Notes.Max, cfg.Notes.Range = "", "", ""
		}
	}
	if f.min != "" || f.max != "" {
		// Explicit bounds win over a preset from the config file
		cfg.Notes.Range = ""
	}
	if f.min != "" {
		cfg.Notes.Min = f.min
	}
	if f.max != "" {
		cfg.Notes.Max = f.max
	}
	if f.rangeName != "" {
		cfg.Notes.Range = f.rangeName
	}
	if f.filter != "" {
		cfg.Notes.Filter = f.filter
	}
	if f.noReveal {
		cfg.Engine.Timing.RevealAnswer = false
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	if preset == "" {
		preset = config.DifficultyNormal
	}
	return cfg, preset, nil
}
