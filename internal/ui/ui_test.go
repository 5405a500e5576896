package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/papapumpkin/lazyscales/internal/fretboard"
	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
	"github.com/papapumpkin/lazyscales/internal/seed"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
	"github.com/papapumpkin/lazyscales/internal/tuning"
)

// captureStderr redirects os.Stderr to a pipe and returns the captured output.
func captureStderr(fn func()) string {
	r, w, _ := os.Pipe()
	orig := os.Stderr
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = orig

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	r.Close()
	return string(buf[:n])
}

func TestSeedValidateResult_OK(t *testing.T) {
	p := New()
	output := captureStderr(func() {
		p.SeedValidateResult("default.toml", 60, 7, nil)
	})
	for _, want := range []string{`catalog "default.toml"`, "60 scale(s)", "7 tuning(s)", "no errors"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestSeedValidateResult_Errors(t *testing.T) {
	p := New()
	errs := []seed.ValidationError{
		{Category: seed.ValCatNotAnOctave, Source: "x.toml", Family: "Blues", Entry: "Nearly", Err: seed.ErrNotAnOctave},
		{Category: seed.ValCatBadRoot, Source: "x.toml", Family: "Guitar", Entry: "odd", Err: seed.ErrBadRoot},
	}
	output := captureStderr(func() {
		p.SeedValidateResult("x.toml", 1, 1, errs)
	})
	if !strings.Contains(output, "2 error(s)") {
		t.Errorf("expected error count, got:\n%s", output)
	}
	for i := range errs {
		if !strings.Contains(output, errs[i].Error()) {
			t.Errorf("expected output to contain %q, got:\n%s", errs[i].Error(), output)
		}
	}
}

func TestSeedApplied(t *testing.T) {
	p := New()
	output := captureStderr(func() {
		p.SeedApplied("extra.toml", seed.Stats{ScaleFamilies: 1, Scales: 2, TuningFamilies: 0, Tunings: 1})
	})
	for _, want := range []string{"extra.toml", "1 scale family", "2 scales", "0 tuning families", "1 tuning)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestSeedChange(t *testing.T) {
	p := New()
	output := captureStderr(func() {
		p.SeedChange(seed.Change{Kind: seed.ChangeRemoved, File: "/tmp/a.toml"})
	})
	if !strings.Contains(output, "removed") || !strings.Contains(output, "/tmp/a.toml") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func TestFamilyTree(t *testing.T) {
	t.Parallel()

	tx := taxonomy.New[string]("Scale families")
	diatonic, _ := tx.NewFamily(tx.Root(), "Diatonic")
	major, _ := tx.NewFamily(diatonic, "Major Scale Modes")
	penta, _ := tx.NewFamily(tx.Root(), "Pentatonic")
	if _, err := tx.AddMember(major, "ionian", "Ionian"); err != nil {
		t.Fatal(err)
	}
	if _, err := tx.AddMember(major, "dorian", "Dorian"); err != nil {
		t.Fatal(err)
	}
	if _, err := tx.AddMember(penta, "maj5", "Major Pentatonic"); err != nil {
		t.Fatal(err)
	}

	got := FamilyTree(TreeRenderer{Members: true}, tx, tx.Root())
	want := strings.Join([]string{
		"Scale families",
		"├── Diatonic",
		"│   └── Major Scale Modes",
		"│       ├── Ionian",
		"│       └── Dorian",
		"└── Pentatonic",
		"    └── Major Pentatonic",
		"",
	}, "\n")
	if got != want {
		t.Errorf("FamilyTree =\n%s\nwant\n%s", got, want)
	}

	bare := FamilyTree(TreeRenderer{}, tx, diatonic)
	if bare != "Diatonic\n└── Major Scale Modes\n" {
		t.Errorf("FamilyTree without members = %q", bare)
	}

	colored := FamilyTree(TreeRenderer{UseColor: true, Members: true}, tx, tx.Root())
	if colored == got || ansi.Strip(colored) != got {
		t.Errorf("colored tree should differ only by escapes:\n%q", colored)
	}
}

func cMajorGrid(t *testing.T, frets int) fretboard.Grid {
	t.Helper()
	cat := scale.NewCatalog()
	pos, err := cat.Intern(pitch.Intervals(2, 2, 1, 2, 2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	ns, err := noteset.New(cat, pitch.C, pos)
	if err != nil {
		t.Fatal(err)
	}
	g, err := fretboard.Render(tuning.FromIntervals(pitch.E, pitch.Intervals(5)...), ns, nil, frets)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRenderFretboard(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(RenderFretboard(cMajorGrid(t, 5), true))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, 2 strings and legend:\n%s", len(lines), out)
	}
	for f := 0; f <= 5; f++ {
		if !strings.Contains(lines[0], string(rune('0'+f))) {
			t.Errorf("header %q lacks fret %d", lines[0], f)
		}
	}
	// A string above E, highest first.
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "A") {
		t.Errorf("first row should be the A string: %q", lines[1])
	}
	if !strings.Contains(lines[1], "[C]") {
		t.Errorf("A string should show the root C at fret 3: %q", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "E") || !strings.Contains(lines[2], "F") {
		t.Errorf("E row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "active") || !strings.Contains(lines[3], "root") {
		t.Errorf("legend = %q", lines[3])
	}
}

func TestRenderFretboardEmpty(t *testing.T) {
	t.Parallel()

	if got := ansi.Strip(RenderFretboard(fretboard.Grid{Frets: 12}, true)); got != "(nothing selected)" {
		t.Errorf("empty grid = %q", got)
	}
}

func TestWire(t *testing.T) {
	t.Parallel()

	tests := map[int]string{0: "─────", 1: "─────", 3: "──·──", 12: "──:──", 15: "──·──", 24: "──:──"}
	for fret, want := range tests {
		if got := wire(fret); got != want {
			t.Errorf("wire(%d) = %q, want %q", fret, got, want)
		}
	}
}
