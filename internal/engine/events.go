package engine

import "time"

// Event is a notification produced by the engine for renderers, audio and journals.
type Event interface {
	engineEvent()
}

// ChallengeSpawned is sent when a new challenge starts traveling.
type ChallengeSpawned struct {
	ID         ChallengeID
	Answer     Answer
	Label      string
	Generation uint64
	Speed      float64
}

func (ChallengeSpawned) engineEvent() {}

// ChallengeResolved is sent exactly once per challenge, when its outcome is committed.
type ChallengeResolved struct {
	ID         ChallengeID
	Outcome    Outcome
	ScoreDelta int
	Expected   Answer
	Given      Answer // Empty when expired
	Label      string
	Score      int           // Score after the resolution
	Lives      int           // Lives after the resolution
	Elapsed    time.Duration // Time from spawn to resolution
}

func (ChallengeResolved) engineEvent() {}

// LevelUp is sent when a correct answer crosses a level threshold.
type LevelUp struct {
	Level int
	Speed float64
}

func (LevelUp) engineEvent() {}

// LifeGained is sent when a score milestone restores a life.
type LifeGained struct {
	Lives int
}

func (LifeGained) engineEvent() {}

// GameOver is sent once when the dwell after the last life ends.
type GameOver struct {
	FinalScore int
	Level      int
}

func (GameOver) engineEvent() {}

// EnginePaused is sent when Pause takes effect.
type EnginePaused struct{}

func (EnginePaused) engineEvent() {}

// EngineResumed is sent when Resume takes effect.
type EngineResumed struct{}

func (EngineResumed) engineEvent() {}

// EngineReset is sent when Reset restores a fresh game.
type EngineReset struct {
	Lives int
	Speed float64
}

func (EngineReset) engineEvent() {}
