// Package tuning describes the open strings of a fretted instrument.
//
// Strings are indexed from the lowest-pitched string (index 0, the root)
// upward. Display code that draws the highest string on top iterates in
// reverse.
package tuning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/papapumpkin/lazyscales/internal/pitch"
)

// ErrNoTemplate is returned by FromTemplate when the template is nil.
var ErrNoTemplate = errors.New("tuning: no template")

// Tuning is a root pitch class plus the intervals between adjacent strings.
// A tuning with n intervals has n+1 strings.
type Tuning struct {
	root      pitch.Class
	intervals []pitch.Interval
}

// FromIntervals builds a tuning whose lowest string is root.
func FromIntervals(root pitch.Class, intervals ...pitch.Interval) *Tuning {
	ivs := make([]pitch.Interval, len(intervals))
	copy(ivs, intervals)
	return &Tuning{root: root, intervals: ivs}
}

// FromTemplate builds a tuning with the template's string intervals and a new
// root, e.g. standard guitar derived from E♭ tuning.
func FromTemplate(root pitch.Class, template *Tuning) (*Tuning, error) {
	if template == nil {
		return nil, ErrNoTemplate
	}
	return FromIntervals(root, template.intervals...), nil
}

// Root returns the pitch class of the lowest string.
func (t *Tuning) Root() pitch.Class { return t.root }

// Strings returns the number of strings.
func (t *Tuning) Strings() int { return len(t.intervals) + 1 }

// Intervals returns a copy of the intervals between adjacent strings.
func (t *Tuning) Intervals() []pitch.Interval {
	out := make([]pitch.Interval, len(t.intervals))
	copy(out, t.intervals)
	return out
}

// OpenStrings returns the open pitch of every string, lowest first.
func (t *Tuning) OpenStrings() []pitch.Class {
	out := make([]pitch.Class, 0, t.Strings())
	current := t.root
	out = append(out, current)
	for _, iv := range t.intervals {
		current = pitch.Apply(current, iv)
		out = append(out, current)
	}
	return out
}

// String spells the open strings lowest first, e.g. "E A D G B E".
func (t *Tuning) String(flat bool) string {
	open := t.OpenStrings()
	names := make([]string, len(open))
	for i, p := range open {
		names[i] = p.Name(flat)
	}
	return strings.Join(names, " ")
}

// Equal reports whether both tunings have the same root and intervals.
func (t *Tuning) Equal(other *Tuning) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.root != other.root || len(t.intervals) != len(other.intervals) {
		return false
	}
	for i := range t.intervals {
		if t.intervals[i] != other.intervals[i] {
			return false
		}
	}
	return true
}

// GoString is used by %#v in test output.
func (t *Tuning) GoString() string {
	return fmt.Sprintf("tuning.Tuning(%s %v)", t.root, t.intervals)
}
