package notes

import (
	"fmt"
	"strings"
)

// Clef selects the staff a note is read on.
type Clef string

const (
	ClefTreble Clef = "treble"
	ClefBass   Clef = "bass"
	ClefAlto   Clef = "alto"
	ClefGrand  Clef = "grand" // Read on the treble staff
)

// Clefs lists every supported clef.
var Clefs = []Clef{ClefTreble, ClefBass, ClefAlto, ClefGrand}

// ParseClef parses a clef name, case-insensitively.
func ParseClef(s string) (Clef, error) {
	c := Clef(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Clefs {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown clef %q (want treble, bass, alto or grand)", s)
}

var lineNotes = map[Clef][]Note{
	ClefTreble: parseAll("E4", "G4", "B4", "D5", "F5"),
	ClefBass:   parseAll("G2", "B2", "D3", "F3", "A3"),
	ClefAlto:   parseAll("F3", "A3", "C4", "E4", "G4"),
}

var spaceNotes = map[Clef][]Note{
	ClefTreble: parseAll("F4", "A4", "C5", "E5"),
	ClefBass:   parseAll("A2", "C3", "E3", "G3"),
	ClefAlto:   parseAll("G3", "B3", "D4", "F4"),
}

// staff maps clefs without their own tables onto the staff they are drawn with.
func (c Clef) staff() Clef {
	switch c {
	case ClefBass, ClefAlto:
		return c
	default:
		return ClefTreble
	}
}

// Lines returns the five notes sitting on the staff lines, bottom to top.
func (c Clef) Lines() []Note {
	return append([]Note(nil), lineNotes[c.staff()]...)
}

// Spaces returns the four notes in the staff spaces, bottom to top.
func (c Clef) Spaces() []Note {
	return append([]Note(nil), spaceNotes[c.staff()]...)
}

// BottomLine returns the note on the lowest staff line.
func (c Clef) BottomLine() Note {
	return lineNotes[c.staff()][0]
}

// StaffStep returns n's vertical position in half-spaces above the bottom line.
// Even steps fall on lines; 0..8 lie within the staff.
func (c Clef) StaffStep(n Note) int {
	return n.Index() - c.BottomLine().Index()
}

func parseAll(names ...string) []Note {
	out := make([]Note, len(names))
	for i, name := range names {
		out[i] = MustParse(name)
	}
	return out
}
