package notes

import (
	"errors"
	"testing"

	"github.com/vovakirdan/staff-wars/internal/engine"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		in      string
		want    Note
		wantErr bool
	}{
		{"G4", Note{"G", 4}, false},
		{"c5", Note{"C", 5}, false},
		{" B3 ", Note{"B", 3}, false},
		{"H4", Note{}, true},
		{"G", Note{}, true},
		{"G-1", Note{}, true},
		{"Gx", Note{}, true},
		{"", Note{}, true},
	}

	for _, tt := range tests {
		got, err := ParseNote(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidNote) {
				t.Errorf("ParseNote(%q) error = %v, expected ErrInvalidNote", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNote(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNote(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestNoteIndexOrdersAcrossOctaves(t *testing.T) {
	if MustParse("B3").Index()+1 != MustParse("C4").Index() {
		t.Error("B3 and C4 should be adjacent")
	}
	if got := MustParse("G4").String(); got != "G4" {
		t.Errorf("String() = %q, expected G4", got)
	}
}

func TestRangeNotes(t *testing.T) {
	tests := []struct {
		name   string
		clef   Clef
		min    string
		max    string
		filter Filter
		want   []string
	}{
		{"treble all", ClefTreble, "E4", "F5", FilterAll, []string{"E4", "F4", "G4", "A4", "B4", "C5", "D5", "E5", "F5"}},
		{"treble lines", ClefTreble, "E4", "F5", FilterLines, []string{"E4", "G4", "B4", "D5", "F5"}},
		{"treble spaces", ClefTreble, "E4", "F5", FilterSpaces, []string{"F4", "A4", "C5", "E5"}},
		{"partial lines", ClefTreble, "C4", "C5", FilterLines, []string{"E4", "G4", "B4"}},
		{"bass lines", ClefBass, "G2", "A3", FilterLines, []string{"G2", "B2", "D3", "F3", "A3"}},
		{"alto spaces", ClefAlto, "C3", "C5", FilterSpaces, []string{"G3", "B3", "D4", "F4"}},
		{"grand uses treble tables", ClefGrand, "C4", "C6", FilterLines, []string{"E4", "G4", "B4", "D5", "F5"}},
		{"single note", ClefTreble, "C4", "C4", FilterAll, []string{"C4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Range{Clef: tt.clef, Min: MustParse(tt.min), Max: MustParse(tt.max), Filter: tt.filter}
			got, err := r.Notes()
			if err != nil {
				t.Fatalf("Notes() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Notes() = %v, expected %v", got, tt.want)
			}
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Errorf("Notes()[%d] = %v, expected %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRangeNotesEmpty(t *testing.T) {
	ranges := []Range{
		{Clef: ClefBass, Min: MustParse("C5"), Max: MustParse("G5"), Filter: FilterLines},
		{Clef: ClefTreble, Min: MustParse("G4"), Max: MustParse("C4")},
		{Clef: ClefTreble},
	}
	for i, r := range ranges {
		if _, err := r.Notes(); !errors.Is(err, ErrEmptyRange) {
			t.Errorf("case %d: Notes() error = %v, expected ErrEmptyRange", i, err)
		}
	}
}

func TestStaffStep(t *testing.T) {
	tests := []struct {
		clef Clef
		note string
		want int
	}{
		{ClefTreble, "E4", 0},
		{ClefTreble, "G4", 2},
		{ClefTreble, "F5", 8},
		{ClefTreble, "C4", -2},
		{ClefBass, "A3", 8},
		{ClefAlto, "C4", 4},
		{ClefGrand, "B4", 4},
	}
	for _, tt := range tests {
		if got := tt.clef.StaffStep(MustParse(tt.note)); got != tt.want {
			t.Errorf("%s.StaffStep(%s) = %d, expected %d", tt.clef, tt.note, got, tt.want)
		}
	}
}

func TestParseClefAndFilter(t *testing.T) {
	if c, err := ParseClef("Bass"); err != nil || c != ClefBass {
		t.Errorf("ParseClef(Bass) = %v, %v", c, err)
	}
	if _, err := ParseClef("tenor"); err == nil {
		t.Error("ParseClef(tenor) should fail")
	}
	if f, err := ParseFilter(""); err != nil || f != FilterAll {
		t.Errorf("ParseFilter(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFilter("ledger"); err == nil {
		t.Error("ParseFilter(ledger) should fail")
	}
}

func TestProviderNoImmediateRepeat(t *testing.T) {
	p, err := NewProvider(DefaultRange(ClefTreble), 42)
	if err != nil {
		t.Fatalf("NewProvider() failed: %v", err)
	}

	var prev engine.Prompt
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		prompt, err := p.Next(engine.DefaultLevelConfig())
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		if prompt.Label == prev.Label {
			t.Fatalf("draw %d repeated %s", i, prompt.Label)
		}
		if string(prompt.Answer) != prompt.Label[:1] {
			t.Errorf("Answer %q does not match label %q", prompt.Answer, prompt.Label)
		}
		seen[prompt.Label] = true
		prev = prompt
	}
	if len(seen) != 9 {
		t.Errorf("expected all 9 notes to appear, saw %d", len(seen))
	}
}

func TestProviderSingleNoteRepeats(t *testing.T) {
	r := Range{Clef: ClefTreble, Min: MustParse("A4"), Max: MustParse("A4")}
	p, err := NewProvider(r, 1)
	if err != nil {
		t.Fatalf("NewProvider() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if n := p.Pick(); n.String() != "A4" {
			t.Errorf("Pick() = %v, expected A4", n)
		}
	}
}

func TestProviderDeterminism(t *testing.T) {
	r := DefaultRange(ClefBass)
	p1, _ := NewProvider(r, 7)
	p2, _ := NewProvider(r, 7)

	var first []Note
	for i := 0; i < 50; i++ {
		a, b := p1.Pick(), p2.Pick()
		if a != b {
			t.Fatalf("draw %d differs: %v vs %v", i, a, b)
		}
		first = append(first, a)
	}

	p1.Reset()
	for i, want := range first {
		if got := p1.Pick(); got != want {
			t.Fatalf("after Reset draw %d = %v, expected %v", i, got, want)
		}
	}
}

func TestNewProviderRejectsEmptyRange(t *testing.T) {
	r := Range{Clef: ClefTreble, Min: MustParse("C2"), Max: MustParse("D2"), Filter: FilterSpaces}
	if _, err := NewProvider(r, 1); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("NewProvider() error = %v, expected ErrEmptyRange", err)
	}
}

func TestProviderDrivesEngine(t *testing.T) {
	p, err := NewProvider(DefaultRange(ClefAlto), 3)
	if err != nil {
		t.Fatalf("NewProvider() failed: %v", err)
	}

	clock := engine.NewManualClock(engine.NewSystemClock().Now())
	e := engine.New(p, engine.WithClock(clock))
	defer e.Stop()
	if err := e.Start(engine.DefaultLevelConfig()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	clock.Advance(engine.DefaultTiming().SpawnDelay)
	s := e.Snapshot()
	if s.Active == nil {
		t.Fatal("expected an active challenge")
	}
	n, err := ParseNote(s.Active.Label)
	if err != nil {
		t.Fatalf("label %q is not a note: %v", s.Active.Label, err)
	}
	if v := e.SubmitAnswer(engine.Answer(n.Letter)); v.Outcome != engine.OutcomeCorrect {
		t.Errorf("SubmitAnswer(%s) = %+v, expected Correct", n.Letter, v)
	}
}
