package midiexport

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/papapumpkin/lazyscales/internal/fretboard"
	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
	"github.com/papapumpkin/lazyscales/internal/tuning"
)

func major(t *testing.T, root pitch.Class) *noteset.NoteSet {
	t.Helper()
	cat := scale.NewCatalog()
	pos, err := cat.Intern(pitch.Intervals(2, 2, 1, 2, 2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.AttachName(pos, "Ionian"); err != nil {
		t.Fatal(err)
	}
	ns, err := noteset.New(cat, root, pos)
	if err != nil {
		t.Fatal(err)
	}
	return ns
}

// noteStarts decodes data and returns the key of every note-on in order.
func noteStarts(t *testing.T, data []byte) []uint8 {
	t.Helper()
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("smf.ReadFrom: %v", err)
	}
	if len(s.Tracks) != 1 {
		t.Fatalf("tracks = %d, want 1", len(s.Tracks))
	}
	var keys []uint8
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
			keys = append(keys, key)
		}
	}
	return keys
}

func TestNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p       pitch.Class
		octave  int
		want    uint8
		wantErr bool
	}{
		{pitch.C, 4, 60, false},
		{pitch.E, 2, 40, false},
		{pitch.A, 4, 69, false},
		{pitch.C, -1, 0, false},
		{pitch.G, 9, 127, false},
		{pitch.GSharp, 9, 0, true},
		{pitch.B, -2, 0, true},
	}
	for _, tt := range tests {
		got, err := Note(tt.p, tt.octave)
		if tt.wantErr {
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Note(%v, %d) err = %v, want ErrOutOfRange", tt.p, tt.octave, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Note(%v, %d) = %d, %v; want %d", tt.p, tt.octave, got, err, tt.want)
		}
	}
}

func TestScaleNotes(t *testing.T) {
	t.Parallel()

	got, err := ScaleNotes(major(t, pitch.C), 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{60, 62, 64, 65, 67, 69, 71, 72}
	if !slices.Equal(got, want) {
		t.Errorf("ScaleNotes(C major) = %v, want %v", got, want)
	}

	if _, err := ScaleNotes(nil, 4); !errors.Is(err, ErrNoNotes) {
		t.Errorf("ScaleNotes(nil) err = %v", err)
	}
	if _, err := ScaleNotes(major(t, pitch.B), 9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ScaleNotes past 127 err = %v", err)
	}
}

func TestOpenStrings(t *testing.T) {
	t.Parallel()

	std := tuning.FromIntervals(pitch.E, pitch.Intervals(5, 5, 5, 4, 5)...)
	got, err := OpenStrings(std, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, StandardGuitar) {
		t.Errorf("OpenStrings(standard) = %v, want %v", got, StandardGuitar)
	}
}

func TestFretboardNotes(t *testing.T) {
	t.Parallel()

	low := tuning.FromIntervals(pitch.E)
	g, err := fretboard.Render(low, major(t, pitch.C), nil, 12)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FretboardNotes(g, []uint8{40})
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{40, 41, 43, 45, 47, 48, 50, 52}
	if !slices.Equal(got, want) {
		t.Errorf("FretboardNotes = %v, want %v", got, want)
	}

	std := tuning.FromIntervals(pitch.E, pitch.Intervals(5, 5, 5, 4, 5)...)
	g6, err := fretboard.Render(std, major(t, pitch.C), nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FretboardNotes(g6, []uint8{40, 45}); !errors.Is(err, ErrOpenStrings) {
		t.Errorf("short open list err = %v, want ErrOpenStrings", err)
	}
}

func TestFretboardNotesSkipsPinnedOnly(t *testing.T) {
	t.Parallel()

	low := tuning.FromIntervals(pitch.E)
	g, err := fretboard.Render(low, major(t, pitch.C), major(t, pitch.D), 2)
	if err != nil {
		t.Fatal(err)
	}
	// Frets 0-2 on E are E F F#: C major selects E and F, D major selects E and F#.
	got, err := FretboardNotes(g, []uint8{40})
	if err != nil {
		t.Fatal(err)
	}
	if want := []uint8{40, 41}; !slices.Equal(got, want) {
		t.Errorf("FretboardNotes = %v, want %v", got, want)
	}
}

func TestWriteScale(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteScale(&buf, major(t, pitch.D), 4, DefaultOptions()); err != nil {
		t.Fatalf("WriteScale: %v", err)
	}
	got := noteStarts(t, buf.Bytes())
	want := []uint8{62, 64, 66, 67, 69, 71, 73, 74}
	if !slices.Equal(got, want) {
		t.Errorf("notes = %v, want %v", got, want)
	}
}

func TestWriteFretboard(t *testing.T) {
	t.Parallel()

	g, err := fretboard.Render(tuning.FromIntervals(pitch.E), major(t, pitch.C), nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteFretboard(&buf, g, StandardGuitar, DefaultOptions()); err != nil {
		t.Fatalf("WriteFretboard: %v", err)
	}
	if got, want := noteStarts(t, buf.Bytes()), []uint8{40, 41, 43, 45}; !slices.Equal(got, want) {
		t.Errorf("notes = %v, want %v", got, want)
	}
}

func TestWriteRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		grid    fretboard.Grid
		wantErr error
	}{
		{"channel", Options{Channel: 16, Velocity: 100, BPM: 120}, fretboard.Grid{}, ErrInvalidOptions},
		{"velocity", Options{Velocity: 0, BPM: 120}, fretboard.Grid{}, ErrInvalidOptions},
		{"tempo", Options{Velocity: 100}, fretboard.Grid{}, ErrInvalidOptions},
		{"empty grid", DefaultOptions(), fretboard.Grid{Frets: 12}, ErrNoNotes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := WriteFretboard(&buf, tt.grid, nil, tt.opts); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes on error", buf.Len())
			}
		})
	}
}
