package fretboard

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
	"github.com/papapumpkin/lazyscales/internal/tuning"
)

// fixture bundles a catalog with the two scales the tests use.
type fixture struct {
	cat        *scale.Catalog
	major      scale.Position
	minorPenta scale.Position
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cat := scale.NewCatalog()
	major, err := cat.Intern(pitch.Intervals(2, 2, 1, 2, 2, 2, 1))
	if err != nil {
		t.Fatalf("Intern(major): %v", err)
	}
	penta, err := cat.Intern(pitch.Intervals(3, 2, 2, 3, 2))
	if err != nil {
		t.Fatalf("Intern(pentatonic): %v", err)
	}
	return fixture{cat: cat, major: major, minorPenta: penta}
}

func (f fixture) noteSet(t *testing.T, root pitch.Class, pos scale.Position) *noteset.NoteSet {
	t.Helper()
	ns, err := noteset.New(f.cat, root, pos)
	if err != nil {
		t.Fatalf("noteset.New: %v", err)
	}
	return ns
}

func standardGuitar() *tuning.Tuning {
	return tuning.FromIntervals(pitch.E, pitch.Intervals(5, 5, 5, 4, 5)...)
}

func activeFrets(row StringRow) []int {
	var out []int
	for f, c := range row.Cells {
		if c.State.Selected() {
			out = append(out, f)
		}
	}
	return out
}

func TestRenderLowEStringInCMajor(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	g, err := Render(standardGuitar(), fx.noteSet(t, pitch.C, fx.major), nil, 12)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(g.Strings) != 6 {
		t.Fatalf("len(Strings) = %d, want 6", len(g.Strings))
	}

	low := g.Strings[0]
	if low.Open != pitch.E {
		t.Fatalf("string 0 open = %v, want E", low.Open)
	}
	if len(low.Cells) != 13 {
		t.Fatalf("len(Cells) = %d, want 13", len(low.Cells))
	}
	if got, want := activeFrets(low), []int{0, 1, 3, 5, 7, 8, 10, 12}; !slices.Equal(got, want) {
		t.Errorf("active frets = %v, want %v", got, want)
	}

	wantPitches := map[int]pitch.Class{0: pitch.E, 1: pitch.F, 3: pitch.G, 5: pitch.A, 7: pitch.B, 8: pitch.C, 10: pitch.D, 12: pitch.E}
	for f, want := range wantPitches {
		c := low.Cells[f]
		if c.State != ActiveOnly || c.Pitch != want {
			t.Errorf("fret %d = %v %v, want active %v", f, c.State, c.Pitch, want)
		}
	}
	if !low.Cells[0].Open || low.Cells[0].OpenPitch != pitch.E {
		t.Errorf("fret 0 not flagged as open E: %+v", low.Cells[0])
	}
	for f := 1; f < len(low.Cells); f++ {
		if low.Cells[f].Open {
			t.Errorf("fret %d flagged open", f)
		}
	}
	if !low.Cells[8].Root {
		t.Error("fret 8 (C) should be marked as root")
	}
	if low.Cells[0].Root {
		t.Error("fret 0 (E) marked as root of C major")
	}
}

func TestRenderRepeatsPastTwelfthFret(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	g, err := Render(standardGuitar(), fx.noteSet(t, pitch.G, fx.major), nil, 24)
	if err != nil {
		t.Fatal(err)
	}
	for s, row := range g.Strings {
		for f := 12; f <= 24; f++ {
			a, b := row.Cells[f], row.Cells[f-12]
			if a.State != b.State || a.Pitch != b.Pitch {
				t.Errorf("string %d fret %d differs from fret %d", s, f, f-12)
			}
		}
	}
}

func TestRenderWithPinned(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	active := fx.noteSet(t, pitch.C, fx.major)
	pinned := fx.noteSet(t, pitch.C, fx.minorPenta) // C E♭ F G B♭
	g, err := Render(tuning.FromIntervals(pitch.E), active, pinned, 11)
	if err != nil {
		t.Fatal(err)
	}
	want := []State{
		ActiveOnly, // E
		Both,       // F
		Empty,      // F♯
		Both,       // G
		Empty,      // A♭
		ActiveOnly, // A
		PinnedOnly, // B♭
		ActiveOnly, // B
		Both,       // C
		Empty,      // D♭
		ActiveOnly, // D
		PinnedOnly, // E♭
	}
	var got []State
	for _, c := range g.Strings[0].Cells {
		got = append(got, c.State)
	}
	if !slices.Equal(got, want) {
		t.Errorf("states = %v, want %v", got, want)
	}
	if !g.Strings[0].Cells[8].Root {
		t.Error("C should be a root in both scales")
	}
	if g.Strings[0].Cells[6].Root {
		t.Error("B♭ is not the pinned root")
	}
}

func TestRenderPinnedRootOnly(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	active := fx.noteSet(t, pitch.C, fx.major)
	pinned := fx.noteSet(t, pitch.ASharp, fx.minorPenta) // B♭ D♭ E♭ F A♭
	g, err := Render(tuning.FromIntervals(pitch.ASharp), active, pinned, 0)
	if err != nil {
		t.Fatal(err)
	}
	c := g.Strings[0].Cells[0]
	if c.State != PinnedOnly || !c.Root || !c.Open {
		t.Errorf("open B♭ = %+v, want pinned root on open string", c)
	}
}

func TestRenderNothingSelected(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	tests := []struct {
		name   string
		tuning *tuning.Tuning
		active *noteset.NoteSet
	}{
		{"no scale", standardGuitar(), nil},
		{"no tuning", nil, fx.noteSet(t, pitch.C, fx.major)},
	}
	for _, tt := range tests {
		g, err := Render(tt.tuning, tt.active, nil, DefaultFrets)
		if err != nil {
			t.Errorf("%s: Render err = %v", tt.name, err)
		}
		if !g.Empty() {
			t.Errorf("%s: grid has %d strings", tt.name, len(g.Strings))
		}
	}
}

func TestRenderNegativeFrets(t *testing.T) {
	t.Parallel()

	if _, err := Render(standardGuitar(), nil, nil, -1); !errors.Is(err, ErrInvalidFrets) {
		t.Errorf("err = %v, want ErrInvalidFrets", err)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	active := fx.noteSet(t, pitch.A, fx.minorPenta)
	pinned := fx.noteSet(t, pitch.C, fx.major)
	a, err := Render(standardGuitar(), active, pinned, DefaultFrets)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(standardGuitar(), active, pinned, DefaultFrets)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two renders with the same inputs differ")
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	g, err := Render(standardGuitar(), fx.noteSet(t, pitch.F, fx.major), nil, 12)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := g.OpenLabels(true), []string{"E", "A", "D", "G", "B", "E"}; !slices.Equal(got, want) {
		t.Errorf("OpenLabels = %v, want %v", got, want)
	}
	// A string, fret 1 is B♭ in F major.
	if got := g.Label(1, 1, true); got != "B♭" {
		t.Errorf("Label(1, 1, flat) = %q, want B♭", got)
	}
	if got := g.Label(1, 1, false); got != "A♯" {
		t.Errorf("Label(1, 1, sharp) = %q, want A♯", got)
	}
	if got := g.Label(1, 2, true); got != "" {
		t.Errorf("Label on empty cell = %q", got)
	}
	if got := g.Label(9, 0, true); got != "" {
		t.Errorf("Label out of range = %q", got)
	}
}

func TestTab(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	g, err := Render(tuning.FromIntervals(pitch.E, 5), fx.noteSet(t, pitch.C, fx.major), nil, 7)
	if err != nil {
		t.Fatal(err)
	}
	want := "" +
		"A     -     B     C     -     D     -     E\n" +
		"E     F     -     G     -     A     -     B\n"
	if got := Tab(g, true); got != want {
		t.Errorf("Tab =\n%s\nwant\n%s", got, want)
	}
}

func TestTabPinned(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	active := fx.noteSet(t, pitch.E, fx.minorPenta) // E G A B D
	pinned := fx.noteSet(t, pitch.C, fx.minorPenta) // C E♭ F G B♭
	g, err := Render(tuning.FromIntervals(pitch.E), active, pinned, 13)
	if err != nil {
		t.Fatal(err)
	}
	want := "E     (F)   -     G     -     A     (B♭)  B     (C)   -     D     (E♭)  E     (F)\n"
	if got := Tab(g, true); got != want {
		t.Errorf("Tab =\n%q\nwant\n%q", got, want)
	}
}

func TestTabMarkers(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	g, err := Render(tuning.FromIntervals(pitch.CSharp), fx.noteSet(t, pitch.C, fx.major), nil, 12)
	if err != nil {
		t.Fatal(err)
	}
	want := "+     D     -     E     F     |     G     |     A     -     B     C     +\n"
	if got := Tab(g, true); got != want {
		t.Errorf("Tab =\n%q\nwant\n%q", got, want)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	for s, want := range map[State]string{Empty: "empty", ActiveOnly: "active", PinnedOnly: "pinned", Both: "both", State(9): "state(9)"} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestStateActive(t *testing.T) {
	t.Parallel()

	for s, want := range map[State]bool{Empty: false, ActiveOnly: true, PinnedOnly: false, Both: true} {
		if got := s.Active(); got != want {
			t.Errorf("%v.Active() = %v, want %v", s, got, want)
		}
	}
}
