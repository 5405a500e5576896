// Package library ties the scale catalog, the tuning list and their family
// taxonomies together. It is the entry point used by seeding, persistence and
// every user-facing command.
package library

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
	"github.com/papapumpkin/lazyscales/internal/tuning"
)

// Root family names.
const (
	ScaleRoot  = "Scale families"
	TuningRoot = "Tuning families"
)

// ChromaticName names the twelve-semitone scale every library starts with.
const ChromaticName = "Chromatic"

var (
	// ErrUnknownScale is returned when a scale name has no entry.
	ErrUnknownScale = errors.New("unknown scale")

	// ErrUnknownTuning is returned when a tuning name has no entry.
	ErrUnknownTuning = errors.New("unknown tuning")

	// ErrTooManyNames is returned by NewModes when there are more names than
	// the scale has degrees.
	ErrTooManyNames = errors.New("more mode names than degrees")
)

// Library owns the catalog and both taxonomies.
type Library struct {
	Catalog *scale.Catalog
	Scales  *taxonomy.Taxonomy[scale.Position]
	Tunings *taxonomy.Taxonomy[*tuning.Tuning]

	logger *slog.Logger

	mu          sync.RWMutex
	scaleNames  map[string]scale.Position
	scaleOrder  []string
	tuningNames map[string]*tuning.Tuning
	tuningOrder []string
	chromatic   scale.Position
}

// New creates a library holding the root families and the chromatic scale.
// A nil logger discards log output.
func New(logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	lib := &Library{
		Catalog:     scale.NewCatalog(),
		Scales:      taxonomy.New[scale.Position](ScaleRoot),
		Tunings:     taxonomy.New[*tuning.Tuning](TuningRoot),
		logger:      logger,
		scaleNames:  make(map[string]scale.Position),
		tuningNames: make(map[string]*tuning.Tuning),
	}

	fam, err := lib.Scales.NewFamily(lib.Scales.Root(), ChromaticName)
	if err != nil {
		panic(fmt.Sprintf("library: chromatic family: %v", err))
	}
	chromatic := make([]pitch.Interval, pitch.Count)
	for i := range chromatic {
		chromatic[i] = pitch.Semitone
	}
	pos, err := lib.NewScale(fam, ChromaticName, chromatic)
	if err != nil {
		panic(fmt.Sprintf("library: chromatic scale: %v", err))
	}
	lib.chromatic = pos
	return lib
}

// Logger returns the library's logger.
func (l *Library) Logger() *slog.Logger { return l.logger }

// Chromatic returns the position of the chromatic scale.
func (l *Library) Chromatic() scale.Position { return l.chromatic }

// NewScale interns intervals, names the resulting position and links it into
// family.
func (l *Library) NewScale(family taxonomy.Family, name string, intervals []pitch.Interval) (scale.Position, error) {
	before := l.Catalog.Len()
	pos, err := l.Catalog.Intern(intervals)
	if err != nil {
		return scale.Position{}, fmt.Errorf("scale %q: %w", name, err)
	}
	if l.Catalog.Len() > before {
		l.logger.Debug("catalog: ring interned", "ring", pos.Ring, "degree", len(intervals))
	}
	if err := l.register(family, pos, name); err != nil {
		return scale.Position{}, err
	}
	return pos, nil
}

// NewModes adds a scale and names its modes: names[0] is the scale itself,
// names[i] is the mode starting on degree i+1. Empty names leave a mode
// anonymous.
func (l *Library) NewModes(family taxonomy.Family, names []string, intervals []pitch.Interval) ([]scale.Position, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("modes: %w: no names", scale.ErrInvalidScale)
	}
	if len(names) > len(intervals) {
		return nil, fmt.Errorf("modes of %q: %w: %d names, %d degrees",
			names[0], ErrTooManyNames, len(names), len(intervals))
	}
	base, err := l.Catalog.Intern(intervals)
	if err != nil {
		return nil, fmt.Errorf("modes of %q: %w", names[0], err)
	}
	out := make([]scale.Position, 0, len(names))
	for i, name := range names {
		pos, err := l.Catalog.Mode(base, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, pos)
		if name == "" {
			continue
		}
		if err := l.register(family, pos, name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NewMode names mode number degree of source and links it into family.
func (l *Library) NewMode(family taxonomy.Family, source scale.Position, degree int, name string) (scale.Position, error) {
	pos, err := l.Catalog.Mode(source, degree)
	if err != nil {
		return scale.Position{}, fmt.Errorf("mode %q: %w", name, err)
	}
	if err := l.register(family, pos, name); err != nil {
		return scale.Position{}, err
	}
	return pos, nil
}

func (l *Library) register(family taxonomy.Family, pos scale.Position, name string) error {
	if err := l.Catalog.AttachName(pos, name); err != nil {
		return fmt.Errorf("scale %q: %w", name, err)
	}
	added, err := l.Scales.AddMember(family, pos, name)
	if err != nil {
		return fmt.Errorf("scale %q: %w", name, err)
	}

	l.mu.Lock()
	if existing, ok := l.scaleNames[name]; !ok {
		l.scaleNames[name] = pos
		l.scaleOrder = append(l.scaleOrder, name)
	} else if existing != pos {
		l.logger.Warn("library: scale name reused", "name", name, "kept", existing.String(), "ignored", pos.String())
	}
	l.mu.Unlock()

	if added {
		l.logger.Debug("library: scale added", "name", name, "family", l.Scales.Name(family), "position", pos.String())
	}
	return nil
}

// NewTuning adds a tuning built from root and the intervals between strings.
func (l *Library) NewTuning(family taxonomy.Family, name string, root pitch.Class, intervals ...pitch.Interval) (*tuning.Tuning, error) {
	return l.addTuning(family, name, tuning.FromIntervals(root, intervals...))
}

// NewDerivedTuning adds a tuning that reuses template's intervals with a new
// root.
func (l *Library) NewDerivedTuning(family taxonomy.Family, name string, root pitch.Class, template *tuning.Tuning) (*tuning.Tuning, error) {
	t, err := tuning.FromTemplate(root, template)
	if err != nil {
		return nil, fmt.Errorf("tuning %q: %w", name, err)
	}
	return l.addTuning(family, name, t)
}

func (l *Library) addTuning(family taxonomy.Family, name string, t *tuning.Tuning) (*tuning.Tuning, error) {
	l.mu.Lock()
	if existing, ok := l.tuningNames[name]; ok {
		l.mu.Unlock()
		if _, err := l.Tunings.AddMember(family, existing, name); err != nil {
			return nil, fmt.Errorf("tuning %q: %w", name, err)
		}
		return existing, nil
	}
	l.mu.Unlock()

	if _, err := l.Tunings.AddMember(family, t, name); err != nil {
		return nil, fmt.Errorf("tuning %q: %w", name, err)
	}

	l.mu.Lock()
	l.tuningNames[name] = t
	l.tuningOrder = append(l.tuningOrder, name)
	l.mu.Unlock()

	l.logger.Debug("library: tuning added", "name", name, "strings", t.Strings(), "family", l.Tunings.Name(family))
	return t, nil
}

// ScaleByName looks up a named scale position.
func (l *Library) ScaleByName(name string) (scale.Position, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pos, ok := l.scaleNames[name]
	return pos, ok
}

// TuningByName looks up a named tuning.
func (l *Library) TuningByName(name string) (*tuning.Tuning, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.tuningNames[name]
	return t, ok
}

// ScaleNames returns every scale name in the order it was added.
func (l *Library) ScaleNames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.scaleOrder...)
}

// TuningNames returns every tuning name in the order it was added.
func (l *Library) TuningNames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.tuningOrder...)
}

// Identification is the result of looking up an interval sequence.
type Identification struct {
	Found    bool
	Position scale.Position
	// Names is empty when the sequence is a mode nobody has named yet.
	Names []string
}

// Named reports whether the identified position carries a name.
func (id Identification) Named() bool { return len(id.Names) > 0 }

// Name returns the first name, or "".
func (id Identification) Name() string {
	if len(id.Names) == 0 {
		return ""
	}
	return id.Names[0]
}

// Identify searches the catalog for a scale with exactly these intervals.
func (l *Library) Identify(intervals []pitch.Interval) Identification {
	pos, ok := l.Catalog.FindExact(intervals)
	if !ok {
		return Identification{}
	}
	return Identification{Found: true, Position: pos, Names: l.Catalog.Names(pos)}
}

// NoteSet materializes the named scale at root.
func (l *Library) NoteSet(scaleName string, root pitch.Class) (*noteset.NoteSet, error) {
	pos, ok := l.ScaleByName(scaleName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, scaleName)
	}
	return noteset.New(l.Catalog, root, pos)
}

// Tuning looks up a tuning by name, returning ErrUnknownTuning when missing.
func (l *Library) Tuning(name string) (*tuning.Tuning, error) {
	t, ok := l.TuningByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTuning, name)
	}
	return t, nil
}

// ScaleFamily returns the family called name, creating it under parent when
// it does not exist. An existing family is also linked under parent.
func (l *Library) ScaleFamily(parent taxonomy.Family, name string) (taxonomy.Family, error) {
	return ensureFamily(l.Scales, parent, name)
}

// TuningFamily is ScaleFamily for the tuning taxonomy.
func (l *Library) TuningFamily(parent taxonomy.Family, name string) (taxonomy.Family, error) {
	return ensureFamily(l.Tunings, parent, name)
}

func ensureFamily[T comparable](tx *taxonomy.Taxonomy[T], parent taxonomy.Family, name string) (taxonomy.Family, error) {
	if f, ok := tx.Find(name); ok {
		if f == tx.Root() || f == parent {
			return f, nil
		}
		if _, err := tx.AddSubfamily(parent, f); err != nil {
			return 0, fmt.Errorf("family %q: %w", name, err)
		}
		return f, nil
	}
	return tx.NewFamily(parent, name)
}
