// Package scale holds the catalog of canonical scales. A canonical scale is a
// ring of intervals that closes on a whole number of octaves; modes are
// positions on the same ring rather than copies of it.
//
// Rings are stored in an arena and never mutated once created, so every read
// path sees a stable view. Names are attached to ring positions through a side
// table, which lets one position carry several aliases.
package scale

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/papapumpkin/lazyscales/internal/pitch"
)

// Sentinel errors for catalog operations.
var (
	// ErrInvalidScale indicates an interval sequence that is empty, does not
	// close on a positive number of octaves, or a position that names no ring.
	ErrInvalidScale = errors.New("invalid scale")

	// ErrOutOfRange indicates a mode rotation outside [1, degree-1].
	ErrOutOfRange = errors.New("mode rotation out of range")
)

// Position identifies one starting point on a ring. The zero Position refers
// to the first ring interned into a catalog.
type Position struct {
	Ring   int
	Offset int
}

// String renders the position for logs and debugging.
func (p Position) String() string {
	return fmt.Sprintf("%d/%d", p.Ring, p.Offset)
}

// Catalog deduplicates interval rings by degree. The zero value is not usable;
// create catalogs with NewCatalog.
type Catalog struct {
	mu       sync.RWMutex
	rings    [][]pitch.Interval
	byDegree map[int][]int
	names    map[Position][]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byDegree: make(map[int][]int),
		names:    make(map[Position][]string),
	}
}

// Intern returns the position whose intervals, read from that position, equal
// intervals exactly. A new ring is allocated only when no existing ring of the
// same degree has such a position. Each interval is reduced to one octave
// before it is stored; the octave check uses the values as given.
func (c *Catalog) Intern(intervals []pitch.Interval) (Position, error) {
	if err := validate(intervals); err != nil {
		return Position{}, err
	}
	edges := reduceAll(intervals)

	c.mu.Lock()
	defer c.mu.Unlock()

	if pos, ok := c.find(edges); ok {
		return pos, nil
	}
	id := len(c.rings)
	c.rings = append(c.rings, edges)
	c.byDegree[len(edges)] = append(c.byDegree[len(edges)], id)
	return Position{Ring: id}, nil
}

// FindExact returns the first position, over every ring of matching degree
// and every rotation of it, whose intervals equal intervals elementwise. The
// returned position may be anonymous; use Name to tell a named scale from an
// undiscovered mode.
func (c *Catalog) FindExact(intervals []pitch.Interval) (Position, bool) {
	if len(intervals) == 0 {
		return Position{}, false
	}
	edges := reduceAll(intervals)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.find(edges)
}

// find requires c.mu to be held.
func (c *Catalog) find(edges []pitch.Interval) (Position, bool) {
	degree := len(edges)
	for _, id := range c.byDegree[degree] {
		ring := c.rings[id]
		for offset := range degree {
			if matchesAt(ring, offset, edges) {
				return Position{Ring: id, Offset: offset}, true
			}
		}
	}
	return Position{}, false
}

// ModeOf returns the position rotation steps ahead of pos on the same ring.
func (c *Catalog) ModeOf(pos Position, rotation int) (Position, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ring, err := c.ring(pos)
	if err != nil {
		return Position{}, err
	}
	degree := len(ring)
	if rotation < 1 || rotation >= degree {
		return Position{}, fmt.Errorf("%w: rotation %d for degree %d", ErrOutOfRange, rotation, degree)
	}
	return Position{Ring: pos.Ring, Offset: (pos.Offset + rotation) % degree}, nil
}

// Mode returns the n-th mode of pos counting from 1, so Mode(pos, 1) is pos
// itself and Mode(pos, 2) starts on the second note.
func (c *Catalog) Mode(pos Position, n int) (Position, error) {
	if n == 1 {
		if _, err := c.Degree(pos); err != nil {
			return Position{}, err
		}
		return pos, nil
	}
	return c.ModeOf(pos, n-1)
}

// Intervals returns the intervals read from pos, one per degree. The result
// is a copy.
func (c *Catalog) Intervals(pos Position) ([]pitch.Interval, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ring, err := c.ring(pos)
	if err != nil {
		return nil, err
	}
	out := make([]pitch.Interval, len(ring))
	for i := range ring {
		out[i] = ring[(pos.Offset+i)%len(ring)]
	}
	return out, nil
}

// Degree returns the number of notes in the scale at pos.
func (c *Catalog) Degree(pos Position) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ring, err := c.ring(pos)
	if err != nil {
		return 0, err
	}
	return len(ring), nil
}

// Degrees returns every degree with at least one ring, ascending.
func (c *Catalog) Degrees() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]int, 0, len(c.byDegree))
	for d := range c.byDegree {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// Rings returns the first position of every ring of the given degree in the
// order they were interned.
func (c *Catalog) Rings(degree int) []Position {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := c.byDegree[degree]
	out := make([]Position, len(ids))
	for i, id := range ids {
		out[i] = Position{Ring: id}
	}
	return out
}

// Len returns the number of rings in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rings)
}

// AttachName records name as an alias for pos. Attaching the same name twice
// is a no-op.
func (c *Catalog) AttachName(pos Position, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidScale)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.ring(pos); err != nil {
		return err
	}
	if slices.Contains(c.names[pos], name) {
		return nil
	}
	c.names[pos] = append(c.names[pos], name)
	return nil
}

// Name returns the first name attached to pos, or "" when pos is anonymous.
func (c *Catalog) Name(pos Position) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if names := c.names[pos]; len(names) > 0 {
		return names[0]
	}
	return ""
}

// Names returns every name attached to pos in attachment order.
func (c *Catalog) Names(pos Position) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.names[pos])
}

// Formula renders the scale at pos as its name followed by each note's
// distance from the root, e.g. "Dorian: T 2 ♭3 4 5 6 ♭7". Labels are chosen
// so the same degree number is not printed twice in a row.
func (c *Catalog) Formula(pos Position) (string, error) {
	intervals, err := c.Intervals(pos)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if name := c.Name(pos); name != "" {
		b.WriteString(name)
		b.WriteString(": ")
	}
	b.WriteString(pitch.PerfectUnison.ShortName())

	var previous string
	var total pitch.Interval
	for _, iv := range intervals[:len(intervals)-1] {
		total += iv
		label := pitch.NamedIntervalOf(total).ShortNameAfter(previous)
		b.WriteByte(' ')
		b.WriteString(label)
		previous = label
	}
	return b.String(), nil
}

// ring requires c.mu to be held.
func (c *Catalog) ring(pos Position) ([]pitch.Interval, error) {
	if pos.Ring < 0 || pos.Ring >= len(c.rings) {
		return nil, fmt.Errorf("%w: no ring at %s", ErrInvalidScale, pos)
	}
	ring := c.rings[pos.Ring]
	if pos.Offset < 0 || pos.Offset >= len(ring) {
		return nil, fmt.Errorf("%w: offset out of ring at %s", ErrInvalidScale, pos)
	}
	return ring, nil
}

func validate(intervals []pitch.Interval) error {
	if len(intervals) == 0 {
		return fmt.Errorf("%w: no intervals", ErrInvalidScale)
	}
	sum := pitch.Sum(intervals)
	if sum <= 0 || sum%int(pitch.Octave) != 0 {
		return fmt.Errorf("%w: intervals sum to %d semitones, not a whole number of octaves", ErrInvalidScale, sum)
	}
	// Edges are stored reduced, so a ring of whole octaves would collapse to
	// all unisons.
	if pitch.Sum(reduceAll(intervals)) == 0 {
		return fmt.Errorf("%w: every interval is a whole octave", ErrInvalidScale)
	}
	return nil
}

func reduceAll(intervals []pitch.Interval) []pitch.Interval {
	out := make([]pitch.Interval, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.Reduce()
	}
	return out
}

func matchesAt(ring []pitch.Interval, offset int, edges []pitch.Interval) bool {
	for i, e := range edges {
		if ring[(offset+i)%len(ring)] != e {
			return false
		}
	}
	return true
}
