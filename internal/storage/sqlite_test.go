package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parent directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.StartRun(Run{Clef: "treble"})
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.Clef != "treble" || run.Session != "local" {
		t.Errorf("RunByID() = %+v, expected local treble run", run)
	}
}

func TestRunLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartRun(Run{Session: "alice", Clef: "bass", Difficulty: "hard"})
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("run ID %q should be a UUID", id)
	}

	resolutions := []Resolution{
		{RunID: id, ChallengeID: "c1", Label: "G2", Expected: "G", Given: "G", Outcome: "Correct", Elapsed: 800 * time.Millisecond},
		{RunID: id, ChallengeID: "c2", Label: "B2", Expected: "B", Given: "A", Outcome: "Incorrect", Elapsed: 500 * time.Millisecond},
		{RunID: id, ChallengeID: "c3", Label: "D3", Expected: "D", Outcome: "Expired", Elapsed: 2400 * time.Millisecond},
	}
	for _, r := range resolutions {
		if err := store.RecordResolution(r); err != nil {
			t.Fatalf("RecordResolution(%s) failed: %v", r.ChallengeID, err)
		}
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Correct != 1 || run.Missed != 2 {
		t.Errorf("tallies = %d/%d, expected 1 correct 2 missed", run.Correct, run.Missed)
	}
	if !run.EndedAt.IsZero() {
		t.Error("run should still be open")
	}

	if err := store.FinishRun(id); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}
	if err := store.FinishRun(id); err != nil {
		t.Fatalf("second FinishRun() failed: %v", err)
	}
	run, _ = store.RunByID(id)
	if run.EndedAt.IsZero() {
		t.Error("FinishRun should set EndedAt")
	}
	if run.Session != "alice" || run.Difficulty != "hard" {
		t.Errorf("run = %+v", run)
	}
}

func TestRecordResolutionRejectsDuplicatesAndUnknownRuns(t *testing.T) {
	store := openTestStore(t)
	id, _ := store.StartRun(Run{Clef: "treble"})

	r := Resolution{RunID: id, ChallengeID: "dup", Label: "E4", Expected: "E", Given: "E", Outcome: "Correct"}
	if err := store.RecordResolution(r); err != nil {
		t.Fatalf("RecordResolution() failed: %v", err)
	}
	if err := store.RecordResolution(r); err == nil {
		t.Error("recording the same challenge twice should fail")
	}

	run, _ := store.RunByID(id)
	if run.Correct != 1 {
		t.Errorf("Correct = %d, expected 1 after a rejected duplicate", run.Correct)
	}

	orphan := Resolution{RunID: "missing", ChallengeID: "x", Label: "E4", Expected: "E", Outcome: "Expired"}
	if err := store.RecordResolution(orphan); err == nil {
		t.Error("recording against an unknown run should fail")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("RunByID() = %+v, expected nil", run)
	}
}

func TestNoteStats(t *testing.T) {
	store := openTestStore(t)
	id, _ := store.StartRun(Run{Clef: "treble"})

	record := func(cid, label, outcome string, ms int) {
		t.Helper()
		err := store.RecordResolution(Resolution{
			RunID:       id,
			ChallengeID: cid,
			Label:       label,
			Expected:    label[:1],
			Outcome:     outcome,
			Elapsed:     time.Duration(ms) * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("RecordResolution() failed: %v", err)
		}
	}

	record("1", "G4", "Correct", 400)
	record("2", "G4", "Correct", 600)
	record("3", "G4", "Incorrect", 100)
	record("4", "F5", "Expired", 2400)
	record("5", "F5", "Correct", 1000)
	record("6", "E4", "Correct", 300)

	stats, err := store.NoteStats()
	if err != nil {
		t.Fatalf("NoteStats() failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 labels, got %d: %+v", len(stats), stats)
	}

	// Weakest first: F5 (1/2), G4 (2/3), E4 (1/1)
	order := []string{"F5", "G4", "E4"}
	for i, want := range order {
		if stats[i].Label != want {
			t.Errorf("stats[%d].Label = %s, expected %s", i, stats[i].Label, want)
		}
	}

	g4 := stats[1]
	if g4.Attempts != 3 || g4.Correct != 2 || g4.Incorrect != 1 || g4.Expired != 0 {
		t.Errorf("G4 = %+v", g4)
	}
	if g4.AvgMillis != 500 {
		t.Errorf("G4 AvgMillis = %d, expected 500 (correct answers only)", g4.AvgMillis)
	}
	if acc := stats[0].Accuracy(); acc != 0.5 {
		t.Errorf("F5 accuracy = %v, expected 0.5", acc)
	}
	if (NoteStat{}).Accuracy() != 0 {
		t.Error("empty stat accuracy should be 0")
	}
}

func TestRecentRunsAndClear(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := store.StartRun(Run{Clef: "alto"})
		if err != nil {
			t.Fatalf("StartRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns(2) returned %d runs", len(runs))
	}
	if runs[0].ID != ids[2] {
		t.Errorf("newest run = %s, expected %s", runs[0].ID, ids[2])
	}

	if err := store.ClearJournal(); err != nil {
		t.Fatalf("ClearJournal() failed: %v", err)
	}
	runs, _ = store.RecentRuns(0)
	if len(runs) != 0 {
		t.Errorf("expected no runs after ClearJournal, got %d", len(runs))
	}
	stats, _ := store.NoteStats()
	if len(stats) != 0 {
		t.Errorf("expected no stats after ClearJournal, got %d", len(stats))
	}
}
