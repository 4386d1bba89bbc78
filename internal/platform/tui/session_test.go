package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/staff-wars/internal/config"
	"github.com/vovakirdan/staff-wars/internal/engine"
	"github.com/vovakirdan/staff-wars/internal/storage"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestSession starts a seeded session on a manual clock with a temporary journal.
func newTestSession(t *testing.T) (*Session, *engine.ManualClock, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := engine.NewManualClock(epoch)
	s, err := NewSession(SessionOptions{
		Config:     config.DefaultConfig(),
		Difficulty: "normal",
		Seed:       7,
		User:       "tester",
		Store:      store,
		Clock:      clock,
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	t.Cleanup(s.Close)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return s, clock, store
}

// pump hands every buffered engine event to the session, like the Bubble Tea loop does.
func pump(s *Session) {
	for {
		select {
		case evt, ok := <-s.Events().Events():
			if !ok {
				return
			}
			s.HandleEvent(evt)
		default:
			return
		}
	}
}

// spawn advances past the spawn delay and returns the active challenge.
func spawn(t *testing.T, s *Session, clock *engine.ManualClock) *engine.Challenge {
	t.Helper()
	clock.Advance(300 * time.Millisecond)
	pump(s)
	ch := s.View().State.Active
	if ch == nil {
		t.Fatalf("no challenge after spawn delay, phase %v", s.View().State.Phase)
	}
	return ch
}

func wrongLetter(a engine.Answer) string {
	if a == "C" {
		return "D"
	}
	return "C"
}

func TestSessionJournalsResolutions(t *testing.T) {
	s, clock, store := newTestSession(t)

	runID := s.RunID()
	if runID == "" {
		t.Fatal("Start should open a journal run")
	}

	ch := spawn(t, s, clock)
	if v := s.Answer(string(ch.Answer)); !v.Accepted {
		t.Fatalf("correct answer rejected: %v", v.Reason)
	}
	pump(s)

	fb := s.View().Feedback
	if fb.Outcome != engine.OutcomeCorrect || fb.Label != ch.Label || fb.Delta != 1 {
		t.Errorf("feedback = %+v, expected correct %s +1", fb, ch.Label)
	}

	clock.Advance(300 * time.Millisecond) // Correct dwell
	ch = spawn(t, s, clock)
	s.Answer(wrongLetter(ch.Answer))
	pump(s)

	run, err := store.RunByID(runID)
	if err != nil || run == nil {
		t.Fatalf("RunByID() = %v, %v", run, err)
	}
	if run.Correct != 1 || run.Missed != 1 {
		t.Errorf("run tallies = %d/%d, expected 1 correct 1 missed", run.Correct, run.Missed)
	}
	if run.Session != "tester" || run.Clef != "treble" || run.Difficulty != "normal" {
		t.Errorf("run = %+v", run)
	}
}

func TestSessionGameOverAndRestart(t *testing.T) {
	s, clock, store := newTestSession(t)
	firstRun := s.RunID()

	for i := 0; i < 3; i++ {
		ch := spawn(t, s, clock)
		s.Answer(wrongLetter(ch.Answer))
		clock.Advance(1500 * time.Millisecond) // Reveal dwell
		pump(s)
	}

	if !s.GameOver() {
		t.Fatalf("expected game over after three misses, phase %v", s.View().State.Phase)
	}
	if got := s.View().FinalScore; got != 0 {
		t.Errorf("FinalScore = %d, expected 0", got)
	}

	run, _ := store.RunByID(firstRun)
	if run == nil || run.EndedAt.IsZero() {
		t.Error("game over should finish the journal run")
	}
	if run != nil && run.Missed != 3 {
		t.Errorf("Missed = %d, expected 3", run.Missed)
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	pump(s)
	if s.GameOver() {
		t.Error("Restart should clear game over")
	}
	if s.RunID() == firstRun || s.RunID() == "" {
		t.Errorf("Restart should open a new run, got %q", s.RunID())
	}
	if st := s.View().State; st.Lives != 3 || st.Score != 0 {
		t.Errorf("standing after restart = %+v", st.Standing)
	}
	spawn(t, s, clock)
}

// loseGame misses three notes and returns their labels.
func loseGame(t *testing.T, s *Session, clock *engine.ManualClock) []string {
	t.Helper()
	var labels []string
	for i := 0; i < 3; i++ {
		ch := spawn(t, s, clock)
		labels = append(labels, ch.Label)
		s.Answer(wrongLetter(ch.Answer))
		clock.Advance(1500 * time.Millisecond)
		pump(s)
	}
	if !s.GameOver() {
		t.Fatalf("expected game over after three misses, phase %v", s.View().State.Phase)
	}
	return labels
}

func TestSessionSeededRestartReplaysNotes(t *testing.T) {
	s, clock, _ := newTestSession(t)

	first := loseGame(t, s, clock)
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	pump(s)
	second := loseGame(t, s, clock)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("note %d = %s after restart, expected %s (first game %v, second %v)",
				i, second[i], first[i], first, second)
		}
	}
}

func TestSessionRevealAppliesToNextGame(t *testing.T) {
	s, clock, _ := newTestSession(t)

	if !s.View().Reveal {
		t.Fatal("default config reveals answers")
	}
	if s.ToggleReveal() {
		t.Fatal("ToggleReveal should turn reveal off")
	}
	if v := s.View(); !v.Reveal || v.RevealNext {
		t.Errorf("toggle should only change the next game, got reveal=%v next=%v", v.Reveal, v.RevealNext)
	}

	// Lose the game with the long dwell still in force
	for i := 0; i < 3; i++ {
		ch := spawn(t, s, clock)
		s.Answer(wrongLetter(ch.Answer))
		clock.Advance(1500 * time.Millisecond)
		pump(s)
	}
	if !s.GameOver() {
		t.Fatal("expected game over")
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if s.View().Reveal {
		t.Error("reveal should be off after restart")
	}

	// Misses now only dwell for the short feedback time
	ch := spawn(t, s, clock)
	s.Answer(wrongLetter(ch.Answer))
	clock.Advance(300 * time.Millisecond)
	pump(s)
	if phase := s.View().State.Phase; phase != engine.PhaseAwaitingSpawn {
		t.Errorf("phase after short dwell = %v, expected AwaitingSpawn", phase)
	}
}

func TestSessionTogglePause(t *testing.T) {
	s, clock, _ := newTestSession(t)
	spawn(t, s, clock)

	s.TogglePause()
	if !s.View().State.Paused {
		t.Fatal("TogglePause should pause")
	}
	if v := s.Answer("C"); v.Accepted || v.Reason != engine.RejectPaused {
		t.Errorf("answer while paused = %+v, expected RejectPaused", v)
	}
	s.TogglePause()
	if s.View().State.Paused {
		t.Error("second TogglePause should resume")
	}
}

func TestSessionWithoutStore(t *testing.T) {
	clock := engine.NewManualClock(epoch)
	s, err := NewSession(SessionOptions{Config: config.DefaultConfig(), Seed: 1, Clock: clock})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	defer s.Close()

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.RunID() != "" {
		t.Errorf("RunID() = %q, expected empty without a journal", s.RunID())
	}

	ch := spawn(t, s, clock)
	s.Answer(string(ch.Answer))
	pump(s)
	if s.View().State.Score != 1 {
		t.Errorf("Score = %d, expected 1", s.View().State.Score)
	}
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notes.Min = "F5"
	cfg.Notes.Max = "E4"

	if _, err := NewSession(SessionOptions{Config: cfg}); err == nil {
		t.Error("an empty note range should be rejected")
	}

	cfg = config.DefaultConfig()
	cfg.Engine.Speed.Base = 0
	if _, err := NewSession(SessionOptions{Config: cfg}); err == nil {
		t.Error("a zero base speed should be rejected")
	}
}
