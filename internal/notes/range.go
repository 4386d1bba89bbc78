package notes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyRange is returned when a range selects no notes.
var ErrEmptyRange = errors.New("note range is empty")

// Filter restricts a range to line or space notes.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterLines  Filter = "lines"
	FilterSpaces Filter = "spaces"
)

// ParseFilter parses a filter name. An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterLines, FilterSpaces:
		return f, nil
	}
	return "", fmt.Errorf("unknown note filter %q (want all, lines or spaces)", s)
}

// Range is an inclusive span of natural notes on one clef.
type Range struct {
	Clef   Clef
	Min    Note
	Max    Note
	Filter Filter
}

// RangePreset is a named starting range.
type RangePreset struct {
	Name  string
	Label string
	Min   string
	Max   string
}

// RangePresets are the treble ranges offered for quick setup.
var RangePresets = []RangePreset{
	{Name: "beginner", Label: "Staff notes only", Min: "E4", Max: "F5"},
	{Name: "intermediate", Label: "Extended range", Min: "C4", Max: "A5"},
	{Name: "advanced", Label: "Full range", Min: "B3", Max: "B5"},
}

// FindRangePreset looks up a preset by name.
func FindRangePreset(name string) (RangePreset, bool) {
	for _, p := range RangePresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return RangePreset{}, false
}

// DefaultRange returns the range spanning clef's staff lines.
func DefaultRange(clef Clef) Range {
	lines := clef.Lines()
	return Range{
		Clef:   clef,
		Min:    lines[0],
		Max:    lines[len(lines)-1],
		Filter: FilterAll,
	}
}

// Notes lists the notes in the range, low to high, after filtering.
func (r Range) Notes() ([]Note, error) {
	if r.Min.IsZero() || r.Max.IsZero() {
		return nil, fmt.Errorf("%w: min and max are required", ErrEmptyRange)
	}

	lo, hi := r.Min.Index(), r.Max.Index()
	var all []Note
	for idx := lo; idx <= hi; idx++ {
		all = append(all, Note{Letter: Letters[idx%len(Letters)], Octave: idx / len(Letters)})
	}

	switch r.Filter {
	case FilterLines:
		all = intersect(r.Clef.Lines(), all)
	case FilterSpaces:
		all = intersect(r.Clef.Spaces(), all)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s..%s on %s with filter %s", ErrEmptyRange, r.Min, r.Max, r.Clef, r.Filter)
	}
	return all, nil
}

// intersect keeps the notes of want that also appear in have, in want's order.
func intersect(want, have []Note) []Note {
	var out []Note
	for _, w := range want {
		for _, h := range have {
			if w == h {
				out = append(out, w)
				break
			}
		}
	}
	return out
}
