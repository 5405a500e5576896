package noteset

import (
	"errors"
	"slices"
	"testing"

	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
)

// newCatalog returns a catalog holding the major ring with Ionian named.
func newCatalog(t *testing.T) (*scale.Catalog, scale.Position) {
	t.Helper()
	cat := scale.NewCatalog()
	pos, err := cat.Intern(pitch.Intervals(2, 2, 1, 2, 2, 2, 1))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if err := cat.AttachName(pos, "Ionian"); err != nil {
		t.Fatalf("AttachName: %v", err)
	}
	return cat, pos
}

func TestPitches(t *testing.T) {
	t.Parallel()

	cat, ionian := newCatalog(t)
	dorian, err := cat.ModeOf(ionian, 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		root pitch.Class
		pos  scale.Position
		want []pitch.Class
	}{
		{"C major", pitch.C, ionian, []pitch.Class{pitch.C, pitch.D, pitch.E, pitch.F, pitch.G, pitch.A, pitch.B}},
		{"G major", pitch.G, ionian, []pitch.Class{pitch.G, pitch.A, pitch.B, pitch.C, pitch.D, pitch.E, pitch.FSharp}},
		{"D dorian", pitch.D, dorian, []pitch.Class{pitch.D, pitch.E, pitch.F, pitch.G, pitch.A, pitch.B, pitch.C}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ns, err := New(cat, tt.root, tt.pos)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := ns.Pitches(); !slices.Equal(got, tt.want) {
				t.Errorf("Pitches() = %v, want %v", got, tt.want)
			}
			if ns.Degree() != 7 {
				t.Errorf("Degree() = %d, want 7", ns.Degree())
			}
		})
	}
}

func TestCircularWraps(t *testing.T) {
	t.Parallel()

	cat, ionian := newCatalog(t)
	ns, err := New(cat, pitch.C, ionian)
	if err != nil {
		t.Fatal(err)
	}

	got := ns.Take(10)
	want := []pitch.Class{pitch.C, pitch.D, pitch.E, pitch.F, pitch.G, pitch.A, pitch.B, pitch.C, pitch.D, pitch.E}
	if !slices.Equal(got, want) {
		t.Errorf("Take(10) = %v, want %v", got, want)
	}
	if ns.Take(0) != nil {
		t.Error("Take(0) should be nil")
	}

	// The sequence restarts from the root on each range.
	for p := range ns.Circular() {
		if p != pitch.C {
			t.Errorf("second range started at %v", p)
		}
		break
	}
}

func TestContainsAndPitchSet(t *testing.T) {
	t.Parallel()

	cat, ionian := newCatalog(t)
	ns, err := New(cat, pitch.C, ionian)
	if err != nil {
		t.Fatal(err)
	}
	set := ns.PitchSet()
	for _, p := range pitch.Classes() {
		white := !slices.Contains([]pitch.Class{pitch.CSharp, pitch.DSharp, pitch.FSharp, pitch.GSharp, pitch.ASharp}, p)
		if set[p.Index()] != white || ns.Contains(p) != white {
			t.Errorf("membership of %v = %v, want %v", p, set[p.Index()], white)
		}
	}
}

func TestNewUnknownPosition(t *testing.T) {
	t.Parallel()

	cat, _ := newCatalog(t)
	if _, err := New(cat, pitch.C, scale.Position{Ring: 3}); !errors.Is(err, scale.ErrInvalidScale) {
		t.Errorf("New(unknown) err = %v, want ErrInvalidScale", err)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	cat, ionian := newCatalog(t)
	ns, err := New(cat, pitch.F, ionian)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ns.String(), "Ionian in F: F G A B♭ C D E"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	ns.SetSharp()
	if ns.Flat() {
		t.Error("Flat() after SetSharp")
	}
	if got, want := ns.String(), "Ionian in F: F G A A♯ C D E"; got != want {
		t.Errorf("sharp String() = %q, want %q", got, want)
	}

	lydian, err := cat.Mode(ionian, 4)
	if err != nil {
		t.Fatal(err)
	}
	anon, err := New(cat, pitch.C, lydian)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := anon.String(), "C: C D E G♭ G A B"; got != want {
		t.Errorf("anonymous String() = %q, want %q", got, want)
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	cat, ionian := newCatalog(t)
	a, _ := New(cat, pitch.C, ionian)
	b, _ := New(cat, pitch.C, ionian)
	b.SetSharp()
	c, _ := New(cat, pitch.D, ionian)

	if !a.Equal(b) {
		t.Error("same root and position should be equal regardless of spelling")
	}
	if a.Equal(c) {
		t.Error("different roots should differ")
	}
	if a.Equal(nil) {
		t.Error("non-nil equal to nil")
	}
}
