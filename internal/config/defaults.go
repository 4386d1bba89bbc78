package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/staffwars.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			DeadlineDistance: 120,
			Speed: SpeedConfig{
				Base:   50,
				Growth: 0.25,
			},
			Lives: LivesConfig{
				Max:        3,
				Start:      3,
				ExtraEvery: 30,
			},
			Scoring: ScoringConfig{
				PointsPerCorrect: 1,
				LevelEvery:       10,
				LevelBonus:       0,
			},
			Timing: TimingConfig{
				SpawnDelay:    Duration(300 * time.Millisecond),
				CorrectDwell:  Duration(300 * time.Millisecond),
				RevealDwell:   Duration(1500 * time.Millisecond),
				RevealAnswer:  true,
				MaxFrameDelta: Duration(100 * time.Millisecond),
			},
		},
		Notes: NotesConfig{
			Clef:   "treble",
			Min:    "E4",
			Max:    "F5",
			Filter: "all",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
