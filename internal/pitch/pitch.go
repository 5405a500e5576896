// Package pitch models the twelve pitch classes of 12-tone equal temperament
// and the intervals between them. Pitch classes form a closed ring: applying
// any interval to any class yields another class, and every ordered pair of
// classes is joined by exactly one interval in [0, 11].
package pitch

import (
	"errors"
	"fmt"
	"strings"
)

// Count is the number of pitch classes in an octave.
const Count = 12

// ErrUnknownNote is returned by Parse for text that is not a note name.
var ErrUnknownNote = errors.New("unknown note name")

// Class is a pitch class, identified by its distance in semitones from C.
// Valid values are 0..11; use Of to reduce arbitrary integers.
type Class uint8

// The twelve pitch classes, named by their sharp spelling.
const (
	C Class = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var (
	sharpNames = [Count]string{"C", "C♯", "D", "D♯", "E", "F", "F♯", "G", "G♯", "A", "A♯", "B"}
	flatNames  = [Count]string{"C", "D♭", "D", "E♭", "E", "F", "G♭", "G", "A♭", "A", "B♭", "B"}
)

// classes holds the interned ring. Callers receive copies of the values, so
// the ring cannot be altered after init.
var classes = func() [Count]Class {
	var cs [Count]Class
	for i := range cs {
		cs[i] = Class(i)
	}
	return cs
}()

// Of returns the pitch class i semitones above C. Negative values and values
// beyond the octave wrap around.
func Of(i int) Class {
	return classes[mod(i)]
}

// Classes returns all twelve pitch classes in ascending order from C.
func Classes() []Class {
	out := make([]Class, Count)
	copy(out, classes[:])
	return out
}

// Index returns the semitone distance from C, in [0, 11].
func (c Class) Index() int {
	return int(c) % Count
}

// Sharp returns the spelling that uses ♯ for black keys.
func (c Class) Sharp() string {
	return sharpNames[c.Index()]
}

// Flat returns the spelling that uses ♭ for black keys.
func (c Class) Flat() string {
	return flatNames[c.Index()]
}

// Name returns the flat or sharp spelling.
func (c Class) Name(flat bool) string {
	if flat {
		return c.Flat()
	}
	return c.Sharp()
}

// String implements fmt.Stringer using the flat spelling.
func (c Class) String() string {
	return c.Flat()
}

// Apply returns the pitch class reached by moving iv semitones up from p.
func Apply(p Class, iv Interval) Class {
	return Of(p.Index() + int(iv))
}

// Between returns the interval in [0, 11] that leads from a to b, so that
// Apply(a, Between(a, b)) == b.
func Between(a, b Class) Interval {
	return Interval(mod(b.Index() - a.Index()))
}

// Parse reads a note name such as "C", "f#", "F♯", "Bb" or "B♭". Double
// accidentals are accepted ("Ebb" is D).
func Parse(s string) (Class, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownNote)
	}
	runes := []rune(s)
	var base int
	switch runes[0] {
	case 'C', 'c':
		base = 0
	case 'D', 'd':
		base = 2
	case 'E', 'e':
		base = 4
	case 'F', 'f':
		base = 5
	case 'G', 'g':
		base = 7
	case 'A', 'a':
		base = 9
	case 'B', 'b':
		base = 11
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
	}
	for _, r := range runes[1:] {
		switch r {
		case '#', '♯', 's':
			base++
		case 'b', '♭':
			base--
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownNote, s)
		}
	}
	return Of(base), nil
}

func mod(i int) int {
	i %= Count
	if i < 0 {
		i += Count
	}
	return i
}
