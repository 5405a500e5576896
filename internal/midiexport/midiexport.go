// Package midiexport writes scales and fretboard selections as Standard MIDI
// Files so they can be auditioned in any sequencer.
package midiexport

import (
	"errors"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/papapumpkin/lazyscales/internal/fretboard"
	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/tuning"
)

var (
	// ErrOutOfRange is returned when a note falls outside MIDI 0-127.
	ErrOutOfRange = errors.New("midiexport: note out of MIDI range")

	// ErrNoNotes is returned when there is nothing to write.
	ErrNoNotes = errors.New("midiexport: nothing to export")

	// ErrOpenStrings is returned when fewer open-string notes than strings are given.
	ErrOpenStrings = errors.New("midiexport: open strings do not match grid")

	// ErrInvalidOptions is returned for an out-of-range channel, velocity or tempo.
	ErrInvalidOptions = errors.New("midiexport: invalid options")
)

// Resolution is the number of ticks per quarter note.
const Resolution = smf.MetricTicks(480)

// StandardGuitar holds the open-string MIDI notes of a guitar in standard
// tuning, lowest string first: E2 A2 D3 G3 B3 E4.
var StandardGuitar = []uint8{40, 45, 50, 55, 59, 64}

// Options controls how notes are written.
type Options struct {
	Channel  uint8
	Velocity uint8
	BPM      float64
}

// DefaultOptions returns channel 0, velocity 100 at 120 BPM.
func DefaultOptions() Options {
	return Options{Channel: 0, Velocity: 100, BPM: 120}
}

func (o Options) validate() error {
	switch {
	case o.Channel > 15:
		return fmt.Errorf("%w: channel %d", ErrInvalidOptions, o.Channel)
	case o.Velocity == 0 || o.Velocity > 127:
		return fmt.Errorf("%w: velocity %d", ErrInvalidOptions, o.Velocity)
	case o.BPM <= 0:
		return fmt.Errorf("%w: tempo %v", ErrInvalidOptions, o.BPM)
	}
	return nil
}

// Note returns the MIDI number of p in octave, with C4 = 60.
func Note(p pitch.Class, octave int) (uint8, error) {
	return note(12*(octave+1) + p.Index())
}

func note(n int) (uint8, error) {
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return uint8(n), nil
}

// ScaleNotes returns an ascending run of ns from its root in octave up to
// the root an octave higher.
func ScaleNotes(ns *noteset.NoteSet, octave int) ([]uint8, error) {
	if ns == nil || ns.Degree() == 0 {
		return nil, ErrNoNotes
	}
	cur := 12*(octave+1) + ns.Root().Index()
	out := make([]uint8, 0, ns.Degree()+1)
	n, err := note(cur)
	if err != nil {
		return nil, err
	}
	out = append(out, n)
	for _, iv := range ns.Intervals() {
		cur += int(iv)
		if n, err = note(cur); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// OpenStrings returns open-string MIDI notes for t, placing the lowest
// string in octave and stacking the tuning's intervals above it.
func OpenStrings(t *tuning.Tuning, octave int) ([]uint8, error) {
	if t == nil {
		return nil, ErrNoNotes
	}
	cur := 12*(octave+1) + t.Root().Index()
	out := make([]uint8, 0, t.Strings())
	n, err := note(cur)
	if err != nil {
		return nil, err
	}
	out = append(out, n)
	for _, iv := range t.Intervals() {
		cur += int(iv)
		if n, err = note(cur); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// FretboardNotes lists the MIDI notes of every cell the active scale selects,
// string by string from the lowest, frets ascending. open gives each
// string's open note.
func FretboardNotes(g fretboard.Grid, open []uint8) ([]uint8, error) {
	if len(open) < len(g.Strings) {
		return nil, fmt.Errorf("%w: %d strings, %d open notes", ErrOpenStrings, len(g.Strings), len(open))
	}
	var out []uint8
	for s, row := range g.Strings {
		for fret, c := range row.Cells {
			if !c.State.Active() {
				continue
			}
			n, err := note(int(open[s]) + fret)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}

// WriteScale writes ns as a single-track SMF, one eighth note per step.
func WriteScale(w io.Writer, ns *noteset.NoteSet, octave int, opts Options) error {
	notes, err := ScaleNotes(ns, octave)
	if err != nil {
		return err
	}
	name := ns.Name()
	if name == "" {
		name = "scale"
	}
	return write(w, name+" in "+ns.Spell(ns.Root()), notes, opts)
}

// WriteFretboard writes the active cells of g as an arpeggio.
func WriteFretboard(w io.Writer, g fretboard.Grid, open []uint8, opts Options) error {
	notes, err := FretboardNotes(g, open)
	if err != nil {
		return err
	}
	return write(w, "fretboard", notes, opts)
}

func write(w io.Writer, name string, notes []uint8, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(notes) == 0 {
		return ErrNoNotes
	}

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	tr.Add(0, smf.MetaTempo(opts.BPM))
	step := Resolution.Ticks8th()
	for _, n := range notes {
		tr.Add(0, midi.NoteOn(opts.Channel, n, opts.Velocity))
		tr.Add(step, midi.NoteOff(opts.Channel, n))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = Resolution
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("midiexport: add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("midiexport: write %q: %w", name, err)
	}
	return nil
}
