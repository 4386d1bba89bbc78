package engine

import (
	"errors"
	"testing"
)

func TestSpeedForLevel(t *testing.T) {
	r := DefaultRules()
	want := []float64{50, 63, 78, 98}
	for i, w := range want {
		level := i + 1
		if got := r.SpeedForLevel(level); got != w {
			t.Errorf("SpeedForLevel(%d) = %v, expected %v", level, got, w)
		}
	}
}

func TestOnCorrectLevelsUp(t *testing.T) {
	k := NewScoreKeeper(DefaultRules())
	s := k.Initial()

	var d Delta
	for i := 0; i < 9; i++ {
		s, d = k.OnCorrect(s)
		if d.LeveledUp {
			t.Fatalf("leveled up early at score %d", s.Score)
		}
	}

	s, d = k.OnCorrect(s)
	if !d.LeveledUp {
		t.Fatal("expected level up at score 10")
	}
	if s.Level != 2 || s.Speed != 63 {
		t.Errorf("level/speed = %d/%v, expected 2/63", s.Level, s.Speed)
	}
	if d.Points != 1 || s.Score != 10 {
		t.Errorf("points/score = %d/%d, expected 1/10", d.Points, s.Score)
	}
}

func TestOnCorrectGainsOneLevelPerAnswer(t *testing.T) {
	r := DefaultRules()
	r.LevelBonus = 10
	k := NewScoreKeeper(r)
	s := k.Initial()

	wantLevels := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 3, 4, 5}
	for i, want := range wantLevels {
		prev := s.Level
		var d Delta
		s, d = k.OnCorrect(s)
		if s.Level != want {
			t.Fatalf("answer %d: level = %d at score %d, expected %d", i+1, s.Level, s.Score, want)
		}
		if d.LeveledUp != (s.Level == prev+1) {
			t.Errorf("answer %d: LeveledUp = %v, level %d -> %d", i+1, d.LeveledUp, prev, s.Level)
		}
		if s.Speed != r.SpeedForLevel(s.Level) {
			t.Errorf("answer %d: speed = %v, expected %v", i+1, s.Speed, r.SpeedForLevel(s.Level))
		}
	}
	if s.Score != 73 {
		t.Errorf("Score = %d, expected 73", s.Score)
	}
}

func TestOnCorrectExtraLife(t *testing.T) {
	r := DefaultRules()
	r.ExtraLifeInterval = 10
	r.MaxLives = 5
	r.StartLives = 3
	k := NewScoreKeeper(r)
	s := k.Initial()

	gained := map[int]bool{}
	for i := 0; i < 40; i++ {
		var d Delta
		s, d = k.OnCorrect(s)
		if d.LifeGained {
			gained[s.Score] = true
		}
	}

	if !gained[10] || !gained[20] {
		t.Errorf("expected lives at scores 10 and 20, got %v", gained)
	}
	if gained[30] || gained[40] {
		t.Errorf("no life should be granted at max lives, got %v", gained)
	}
	if len(gained) != 2 {
		t.Errorf("expected exactly 2 extra lives, got %v", gained)
	}
	if s.Lives != 5 {
		t.Errorf("Lives = %d, expected 5", s.Lives)
	}
}

func TestOnCorrectMultiPointAnswerCannotSkipExtraLife(t *testing.T) {
	r := DefaultRules()
	r.PointsPerCorrect = 4
	r.ExtraLifeInterval = 10
	r.StartLives = 1
	k := NewScoreKeeper(r)
	s := k.Initial()

	// 4, 8, 12: crosses 10 without landing on it
	s, _ = k.OnCorrect(s)
	s, _ = k.OnCorrect(s)
	s, d := k.OnCorrect(s)
	if !d.LifeGained || s.Lives != 2 {
		t.Errorf("crossing 10 should grant a life, lives = %d", s.Lives)
	}
}

func TestOnIncorrectBoundedAtZero(t *testing.T) {
	k := NewScoreKeeper(DefaultRules())
	s := k.Initial()

	wantLives := []int{2, 1, 0}
	exhausted := 0
	for _, want := range wantLives {
		var d Delta
		s, d = k.OnIncorrect(s)
		if s.Lives != want {
			t.Errorf("Lives = %d, expected %d", s.Lives, want)
		}
		if d.Exhausted {
			exhausted++
		}
	}

	s, d := k.OnIncorrect(s)
	if s.Lives != 0 {
		t.Errorf("Lives went below zero: %d", s.Lives)
	}
	if d.LifeLost || d.Exhausted {
		t.Errorf("OnIncorrect at zero lives should be a no-op, got %+v", d)
	}
	if exhausted != 1 {
		t.Errorf("Exhausted reported %d times, expected 1", exhausted)
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}

	bad := []func(*Rules){
		func(r *Rules) { r.BaseSpeed = 0 },
		func(r *Rules) { r.SpeedGrowth = -0.1 },
		func(r *Rules) { r.MaxLives = 0 },
		func(r *Rules) { r.StartLives = 9 },
		func(r *Rules) { r.PointsPerCorrect = 0 },
		func(r *Rules) { r.LevelEvery = -1 },
	}
	for i, mutate := range bad {
		r := DefaultRules()
		mutate(&r)
		if err := r.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: Validate() = %v, expected ErrInvalidConfig", i, err)
		}
	}
}
