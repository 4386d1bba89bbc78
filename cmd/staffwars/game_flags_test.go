package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/staff-wars/internal/config"
)

// writeConfig writes the embedded defaults to a temp file so tests ignore ~/.staffwars.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staffwars.yaml")
	if err := os.WriteFile(path, config.DefaultYAML(), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestGameFlagsDefaults(t *testing.T) {
	f := gameFlags{configPath: writeConfig(t)}

	cfg, preset, err := f.load()
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}
	if preset != config.DifficultyNormal {
		t.Errorf("preset = %q, expected normal", preset)
	}
	if cfg.Notes.Min != "E4" || cfg.Notes.Max != "F5" || !cfg.Engine.Timing.RevealAnswer {
		t.Errorf("unexpected defaults: %+v", cfg.Notes)
	}
}

func TestGameFlagsOverrides(t *testing.T) {
	f := gameFlags{
		configPath: writeConfig(t),
		difficulty: "hard",
		clef:       "bass",
		filter:     "spaces",
		noReveal:   true,
	}

	cfg, preset, err := f.load()
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}
	if preset != config.DifficultyHard || cfg.Engine.Lives.Max != 2 {
		t.Errorf("hard preset not applied: %q, lives %d", preset, cfg.Engine.Lives.Max)
	}
	if cfg.Engine.Timing.RevealAnswer {
		t.Error("--no-reveal should disable reveal")
	}

	// A clef change without bounds falls back to that clef's staff
	r, err := cfg.NoteRange()
	if err != nil {
		t.Fatalf("NoteRange() failed: %v", err)
	}
	if r.Min.String() != "G2" || r.Max.String() != "A3" {
		t.Errorf("bass range = %s-%s, expected G2-A3", r.Min, r.Max)
	}
}

func TestGameFlagsRangePreset(t *testing.T) {
	f := gameFlags{configPath: writeConfig(t), rangeName: "advanced"}

	cfg, _, err := f.load()
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}
	r, _ := cfg.NoteRange()
	if r.Min.String() != "B3" || r.Max.String() != "B5" {
		t.Errorf("advanced range = %s-%s, expected B3-B5", r.Min, r.Max)
	}
}

func TestGameFlagsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		f    gameFlags
	}{
		{"difficulty", gameFlags{difficulty: "brutal"}},
		{"clef", gameFlags{clef: "tenor"}},
		{"note", gameFlags{min: "H4"}},
		{"empty range", gameFlags{min: "F5", max: "E4"}},
		{"filter", gameFlags{filter: "ledger"}},
		{"range preset", gameFlags{rangeName: "expert"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.f.configPath = writeConfig(t)
			if _, _, err := tt.f.load(); err == nil {
				t.Error("load() should fail")
			}
		})
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"2222":           "2222",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, want)
		}
	}
}
