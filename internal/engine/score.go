package engine

import (
	"fmt"
	"math"
)

// Rules define scoring, lives and speed progression.
type Rules struct {
	BaseSpeed         float64 // Level 1 speed, distance units per second
	SpeedGrowth       float64 // Compound speed increase per level (0.25 = +25%)
	MaxLives          int
	StartLives        int // 0 means MaxLives
	ExtraLifeInterval int // Score multiple that restores a life; 0 disables
	LevelEvery        int // Points per level; 0 disables leveling
	PointsPerCorrect  int
	LevelBonus        int // Extra points per correct answer for each level above 1
}

// DefaultRules returns the standard progression.
func DefaultRules() Rules {
	return Rules{
		BaseSpeed:         50,
		SpeedGrowth:       0.25,
		MaxLives:          3,
		StartLives:        3,
		ExtraLifeInterval: 30,
		LevelEvery:        10,
		PointsPerCorrect:  1,
		LevelBonus:        0,
	}
}

// Validate checks the rules for values that would stall or break play.
func (r Rules) Validate() error {
	switch {
	case r.BaseSpeed <= 0:
		return fmt.Errorf("%w: base speed must be positive, got %v", ErrInvalidConfig, r.BaseSpeed)
	case r.SpeedGrowth < 0:
		return fmt.Errorf("%w: speed growth must not be negative, got %v", ErrInvalidConfig, r.SpeedGrowth)
	case r.MaxLives < 1:
		return fmt.Errorf("%w: max lives must be at least 1, got %d", ErrInvalidConfig, r.MaxLives)
	case r.StartLives < 0 || r.StartLives > r.MaxLives:
		return fmt.Errorf("%w: start lives %d outside [0, %d]", ErrInvalidConfig, r.StartLives, r.MaxLives)
	case r.ExtraLifeInterval < 0 || r.LevelEvery < 0:
		return fmt.Errorf("%w: intervals must not be negative", ErrInvalidConfig)
	case r.PointsPerCorrect < 1:
		return fmt.Errorf("%w: points per correct answer must be at least 1, got %d", ErrInvalidConfig, r.PointsPerCorrect)
	case r.LevelBonus < 0:
		return fmt.Errorf("%w: level bonus must not be negative, got %d", ErrInvalidConfig, r.LevelBonus)
	}
	return nil
}

// PointsForLevel returns the points a correct answer is worth at level.
func (r Rules) PointsForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return r.PointsPerCorrect + (level-1)*r.LevelBonus
}

// SpeedForLevel returns the rounded speed for level: BaseSpeed * (1+SpeedGrowth)^(level-1).
func (r Rules) SpeedForLevel(level int) float64 {
	if level < 1 {
		level = 1
	}
	return math.Round(r.BaseSpeed * math.Pow(1+r.SpeedGrowth, float64(level-1)))
}

// Standing is the player's score, lives, level and current speed.
type Standing struct {
	Score int
	Lives int
	Level int
	Speed float64
}

// Delta describes what a single scoring transition changed.
type Delta struct {
	Points     int
	LeveledUp  bool
	LifeGained bool
	LifeLost   bool
	Exhausted  bool // Lives just reached zero
}

// ScoreKeeper applies Rules to accepted outcomes. Its transitions are pure
// and total: the engine only calls them for outcomes the AnswerGate accepted.
type ScoreKeeper struct {
	rules Rules
}

// NewScoreKeeper creates a score keeper for the given rules.
func NewScoreKeeper(rules Rules) ScoreKeeper {
	return ScoreKeeper{rules: rules}
}

// Initial returns the standing at the start of a game.
func (k ScoreKeeper) Initial() Standing {
	lives := k.rules.StartLives
	if lives <= 0 {
		lives = k.rules.MaxLives
	}
	return Standing{
		Score: 0,
		Lives: lives,
		Level: 1,
		Speed: k.rules.SpeedForLevel(1),
	}
}

// OnCorrect awards points, levels up once when a LevelEvery threshold is
// crossed and restores a life when the score reaches a multiple of
// ExtraLifeInterval. A single answer never gains more than one level.
func (k ScoreKeeper) OnCorrect(s Standing) (Standing, Delta) {
	var d Delta
	old := s.Score
	d.Points = k.rules.PointsForLevel(s.Level)
	s.Score += d.Points

	if lv := k.rules.LevelEvery; lv > 0 && s.Score/lv > old/lv {
		s.Level++
		s.Speed = k.rules.SpeedForLevel(s.Level)
		d.LeveledUp = true
	}

	// Crossing rather than equality so multi-point answers cannot skip a multiple
	if iv := k.rules.ExtraLifeInterval; iv > 0 && s.Score/iv > old/iv && s.Lives < k.rules.MaxLives {
		s.Lives++
		d.LifeGained = true
	}

	return s, d
}

// OnIncorrect removes one life. At zero lives it is a no-op, so Exhausted is
// reported exactly once per game.
func (k ScoreKeeper) OnIncorrect(s Standing) (Standing, Delta) {
	var d Delta
	if s.Lives <= 0 {
		s.Lives = 0
		return s, d
	}
	s.Lives--
	d.LifeLost = true
	d.Exhausted = s.Lives == 0
	return s, d
}
