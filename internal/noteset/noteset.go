// Package noteset materializes a catalog scale at a concrete root.
package noteset

import (
	"fmt"
	"iter"
	"strings"

	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
)

// NoteSet is a scale played from a root pitch class. The only mutable part is
// the spelling preference; root and scale are fixed at construction.
type NoteSet struct {
	root      pitch.Class
	pos       scale.Position
	name      string
	intervals []pitch.Interval
	flat      bool
}

// New builds a NoteSet for the scale at pos rooted at root. The scale's
// intervals and name are captured at construction, so later catalog growth
// does not change the NoteSet.
func New(cat *scale.Catalog, root pitch.Class, pos scale.Position) (*NoteSet, error) {
	intervals, err := cat.Intervals(pos)
	if err != nil {
		return nil, err
	}
	if len(intervals) == 0 {
		return nil, fmt.Errorf("%w: degree 0 at %s", scale.ErrInvalidScale, pos)
	}
	return &NoteSet{
		root:      root,
		pos:       pos,
		name:      cat.Name(pos),
		intervals: intervals,
		flat:      true,
	}, nil
}

// Root returns the first pitch of the set.
func (n *NoteSet) Root() pitch.Class { return n.root }

// Position returns the catalog position backing the set.
func (n *NoteSet) Position() scale.Position { return n.pos }

// Name returns the scale name, or "" for an anonymous position.
func (n *NoteSet) Name() string { return n.name }

// Degree returns the number of pitches in one pass of the scale.
func (n *NoteSet) Degree() int { return len(n.intervals) }

// Intervals returns a copy of the step intervals starting at the root.
func (n *NoteSet) Intervals() []pitch.Interval {
	out := make([]pitch.Interval, len(n.intervals))
	copy(out, n.intervals)
	return out
}

// Pitches returns Degree pitch classes: the root followed by the root shifted
// by each cumulative interval sum.
func (n *NoteSet) Pitches() []pitch.Class {
	return n.Take(n.Degree())
}

// Circular yields the scale's pitches forever, wrapping from the last degree
// back to the root. Consumers must stop ranging on their own.
func (n *NoteSet) Circular() iter.Seq[pitch.Class] {
	return func(yield func(pitch.Class) bool) {
		current := n.root
		for i := 0; ; i++ {
			if !yield(current) {
				return
			}
			current = pitch.Apply(current, n.intervals[i%len(n.intervals)])
		}
	}
}

// Take returns the first count pitches of the circular sequence.
func (n *NoteSet) Take(count int) []pitch.Class {
	if count <= 0 {
		return nil
	}
	out := make([]pitch.Class, 0, count)
	for p := range n.Circular() {
		out = append(out, p)
		if len(out) == count {
			break
		}
	}
	return out
}

// PitchSet reports membership for each of the twelve pitch classes.
func (n *NoteSet) PitchSet() [pitch.Count]bool {
	var set [pitch.Count]bool
	for _, p := range n.Pitches() {
		set[p.Index()] = true
	}
	return set
}

// Contains reports whether p is one of the set's pitches.
func (n *NoteSet) Contains(p pitch.Class) bool {
	return n.PitchSet()[p.Index()]
}

// SetFlat spells black keys with ♭.
func (n *NoteSet) SetFlat() { n.flat = true }

// SetSharp spells black keys with ♯.
func (n *NoteSet) SetSharp() { n.flat = false }

// Flat reports the current spelling preference.
func (n *NoteSet) Flat() bool { return n.flat }

// Spell returns p in the set's spelling.
func (n *NoteSet) Spell(p pitch.Class) string {
	return p.Name(n.flat)
}

// Equal reports whether two NoteSets select the same root and scale position.
// Spelling preference does not affect equality.
func (n *NoteSet) Equal(other *NoteSet) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.root == other.root && n.pos == other.pos
}

// String renders "Dorian in D: D E F G A B C". The name and " in " are
// omitted for anonymous scales.
func (n *NoteSet) String() string {
	var b strings.Builder
	if n.name != "" {
		b.WriteString(n.name)
		b.WriteString(" in ")
	}
	b.WriteString(n.Spell(n.root))
	b.WriteByte(':')
	for _, p := range n.Pitches() {
		b.WriteByte(' ')
		b.WriteString(n.Spell(p))
	}
	return b.String()
}
