// Package notes supplies staff-note challenges to the engine.
package notes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNote is returned when a note name cannot be parsed.
var ErrInvalidNote = errors.New("invalid note")

// Letters are the natural note names in staff order.
var Letters = []string{"C", "D", "E", "F", "G", "A", "B"}

// Note is a natural note with scientific pitch octave (C4 is middle C).
type Note struct {
	Letter string
	Octave int
}

// ParseNote parses names like "G4" or "c5".
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}

	letter := strings.ToUpper(s[:1])
	if letterIndex(letter) < 0 {
		return Note{}, fmt.Errorf("%w: %q: unknown letter", ErrInvalidNote, s)
	}
	octave, err := strconv.Atoi(s[1:])
	if err != nil || octave < 0 || octave > 8 {
		return Note{}, fmt.Errorf("%w: %q: bad octave", ErrInvalidNote, s)
	}
	return Note{Letter: letter, Octave: octave}, nil
}

// MustParse is ParseNote for package-level tables. It panics on bad input.
func MustParse(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the note name, e.g. "G4".
func (n Note) String() string {
	return n.Letter + strconv.Itoa(n.Octave)
}

// Index returns the diatonic step count from C0. Adjacent staff positions differ by one.
func (n Note) Index() int {
	return n.Octave*len(Letters) + letterIndex(n.Letter)
}

// IsZero reports whether n is the zero Note.
func (n Note) IsZero() bool {
	return n.Letter == ""
}

func letterIndex(letter string) int {
	for i, l := range Letters {
		if l == letter {
			return i
		}
	}
	return -1
}
