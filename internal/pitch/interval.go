package pitch

import (
	"fmt"
	"strings"
)

// Interval is a directed distance between pitches, measured in semitones.
// Intervals compare equal under octave reduction via Equivalent.
type Interval int

// Named distances with no diatonic spelling of their own.
const (
	Unison    Interval = 0
	Semitone  Interval = 1
	WholeTone Interval = 2
	Tritone   Interval = 6
	Octave    Interval = 12
)

// Reduce returns the interval folded into a single octave, in [0, 11].
func (iv Interval) Reduce() Interval {
	return Interval(mod(int(iv)))
}

// Equivalent reports whether two intervals span the same number of semitones
// modulo the octave. Unison and Octave are equivalent.
func (iv Interval) Equivalent(other Interval) bool {
	return iv.Reduce() == other.Reduce()
}

// Named returns the diatonic name for the reduced interval.
func (iv Interval) Named() NamedInterval {
	return NamedIntervalOf(iv)
}

// String returns the diatonic short name of the reduced interval.
func (iv Interval) String() string {
	return iv.Named().ShortName()
}

// NamedInterval is one of the twelve diatonic intervals within an octave. It
// carries a short label and, for some intervals, an alternate label used to
// avoid spelling the same degree twice in a row.
type NamedInterval struct {
	semitones Interval
	short     string
	alt       string
}

// diatonic is indexed by semitone count.
var diatonic = [Count]NamedInterval{
	{0, "T", ""},
	{1, "♭2", ""},
	{2, "2", "♭♭3"},
	{3, "♭3", ""},
	{4, "3", "♭4"},
	{5, "4", ""},
	{6, "♯4", "♭5"},
	{7, "5", "♭♭6"},
	{8, "♯5", "♭6"},
	{9, "6", "♭♭7"},
	{10, "♭7", ""},
	{11, "7", ""},
}

// The diatonic intervals by conventional name.
var (
	PerfectUnison   = diatonic[0]
	MinorSecond     = diatonic[1]
	MajorSecond     = diatonic[2]
	MinorThird      = diatonic[3]
	MajorThird      = diatonic[4]
	Fourth          = diatonic[5]
	DiminishedFifth = diatonic[6]
	Fifth           = diatonic[7]
	MinorSixth      = diatonic[8]
	MajorSixth      = diatonic[9]
	MinorSeventh    = diatonic[10]
	MajorSeventh    = diatonic[11]
)

// NamedIntervalOf returns the diatonic interval for iv reduced to one octave.
func NamedIntervalOf(iv Interval) NamedInterval {
	return diatonic[iv.Reduce()]
}

// Semitones returns the interval size, always in [0, 11].
func (n NamedInterval) Semitones() Interval {
	return n.semitones
}

// ShortName returns the primary label, e.g. "♭3".
func (n NamedInterval) ShortName() string {
	return n.short
}

// AltName returns the alternate label, or "" when the interval has none.
func (n NamedInterval) AltName() string {
	return n.alt
}

// ShortNameAfter returns the label to print after previous. When the primary
// label ends in the same symbol as previous and an alternate exists, the
// alternate is used. If the alternate would repeat the symbol too, the
// primary label is kept.
func (n NamedInterval) ShortNameAfter(previous string) string {
	if n.alt == "" || previous == "" {
		return n.short
	}
	last := lastSymbol(previous)
	if strings.HasSuffix(n.short, last) && !strings.HasSuffix(n.alt, last) {
		return n.alt
	}
	return n.short
}

// Sum adds iv and folds the result back into one octave.
func (n NamedInterval) Sum(iv Interval) NamedInterval {
	return NamedIntervalOf(n.semitones + iv)
}

// String returns the primary label.
func (n NamedInterval) String() string {
	return n.short
}

// GoString helps test failure output distinguish labels from semitone counts.
func (n NamedInterval) GoString() string {
	return fmt.Sprintf("pitch.NamedInterval(%d %q)", n.semitones, n.short)
}

// Sum returns the total number of semitones across ivs.
func Sum(ivs []Interval) int {
	total := 0
	for _, iv := range ivs {
		total += int(iv)
	}
	return total
}

// Intervals converts plain semitone counts into Intervals.
func Intervals(semitones ...int) []Interval {
	out := make([]Interval, len(semitones))
	for i, s := range semitones {
		out[i] = Interval(s)
	}
	return out
}

func lastSymbol(s string) string {
	r := []rune(s)
	return string(r[len(r)-1])
}
