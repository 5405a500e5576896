// Package fretboard projects scales onto the strings of a tuning.
//
// Each string's activation pattern is a pure function of its open pitch and
// the scale's pitch-class set: fret f lights up when the pitch f semitones
// above the open string belongs to the scale. No iterator state is carried
// between strings or between calls.
package fretboard

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
	"github.com/papapumpkin/lazyscales/internal/tuning"
)

// DefaultFrets is the fret count used when the caller does not choose one.
const DefaultFrets = 16

// ErrInvalidFrets is returned for a negative fret count.
var ErrInvalidFrets = errors.New("fretboard: fret count must not be negative")

// ErrInvalidScale aliases the catalog error so callers can match either.
var ErrInvalidScale = scale.ErrInvalidScale

// State tags a cell by which of the two scales select it.
type State int

// Cell states.
const (
	Empty State = iota
	ActiveOnly
	PinnedOnly
	Both
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case ActiveOnly:
		return "active"
	case PinnedOnly:
		return "pinned"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Selected reports whether any scale selects the cell.
func (s State) Selected() bool { return s != Empty }

// Active reports whether the active scale selects the cell.
func (s State) Active() bool { return s == ActiveOnly || s == Both }

// Cell is one (string, fret) position.
type Cell struct {
	State State
	// Pitch is the pitch class sounding at this position. It is set for every
	// cell; whether it is shown depends on State.
	Pitch pitch.Class
	// Open marks fret 0, where the tuning note is drawn as its own layer.
	Open bool
	// OpenPitch is the string's open pitch class.
	OpenPitch pitch.Class
	// Root marks a selected cell whose pitch is the root of the scale it is
	// displayed for: the active scale for ActiveOnly and Both, the pinned
	// scale for PinnedOnly.
	Root bool
}

// StringRow holds the cells of one string, fret 0 first.
type StringRow struct {
	Open  pitch.Class
	Cells []Cell
}

// Grid is the rendered fretboard. Strings follow the tuning's order, lowest
// string first. Each row has Frets+1 cells.
type Grid struct {
	Strings []StringRow
	Frets   int
}

// Empty reports whether the grid has no strings, the state shown before
// anything is selected.
func (g Grid) Empty() bool { return len(g.Strings) == 0 }

// OpenLabels spells each string's open pitch, lowest string first.
func (g Grid) OpenLabels(flat bool) []string {
	out := make([]string, len(g.Strings))
	for i, row := range g.Strings {
		out[i] = row.Open.Name(flat)
	}
	return out
}

// Label returns the spelling of the pitch shown at (str, fret), or "" when
// the cell is empty or out of range.
func (g Grid) Label(str, fret int, flat bool) string {
	if str < 0 || str >= len(g.Strings) {
		return ""
	}
	cells := g.Strings[str].Cells
	if fret < 0 || fret >= len(cells) {
		return ""
	}
	c := cells[fret]
	if !c.State.Selected() {
		return ""
	}
	return c.Pitch.Name(flat)
}

// Render computes the grid for tuning t with the active scale and an optional
// pinned scale. A nil tuning or nil active scale yields an empty grid.
func Render(t *tuning.Tuning, active, pinned *noteset.NoteSet, frets int) (Grid, error) {
	if frets < 0 {
		return Grid{}, fmt.Errorf("%w: %d", ErrInvalidFrets, frets)
	}
	if t == nil || active == nil {
		return Grid{Frets: frets}, nil
	}
	if active.Degree() == 0 {
		return Grid{}, fmt.Errorf("%w: active scale has no degrees", ErrInvalidScale)
	}
	if pinned != nil && pinned.Degree() == 0 {
		return Grid{}, fmt.Errorf("%w: pinned scale has no degrees", ErrInvalidScale)
	}

	activeSet := active.PitchSet()
	var pinnedSet [pitch.Count]bool
	if pinned != nil {
		pinnedSet = pinned.PitchSet()
	}

	open := t.OpenStrings()
	g := Grid{Strings: make([]StringRow, len(open)), Frets: frets}
	for i, p := range open {
		pattern := octavePattern(p, activeSet, pinnedSet, active, pinned)
		cells := make([]Cell, frets+1)
		for f := range cells {
			c := pattern[f%pitch.Count]
			c.Open = f == 0
			cells[f] = c
		}
		g.Strings[i] = StringRow{Open: p, Cells: cells}
	}
	return g, nil
}

// octavePattern computes one octave of cells for a string tuned to open.
func octavePattern(open pitch.Class, activeSet, pinnedSet [pitch.Count]bool, active, pinned *noteset.NoteSet) [pitch.Count]Cell {
	var pattern [pitch.Count]Cell
	for offset := range pitch.Count {
		p := pitch.Apply(open, pitch.Interval(offset))
		inActive := activeSet[p.Index()]
		inPinned := pinnedSet[p.Index()]

		c := Cell{Pitch: p, OpenPitch: open}
		switch {
		case inActive && inPinned:
			c.State = Both
			c.Root = p == active.Root()
		case inActive:
			c.State = ActiveOnly
			c.Root = p == active.Root()
		case inPinned:
			c.State = PinnedOnly
			c.Root = p == pinned.Root()
		}
		pattern[offset] = c
	}
	return pattern
}
