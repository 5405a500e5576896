package tuning

import (
	"errors"
	"slices"
	"testing"

	"github.com/papapumpkin/lazyscales/internal/pitch"
)

func TestOpenStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		root      pitch.Class
		intervals []pitch.Interval
		want      []pitch.Class
		spelled   string
	}{
		{
			name:      "standard guitar",
			root:      pitch.E,
			intervals: pitch.Intervals(5, 5, 5, 4, 5),
			want:      []pitch.Class{pitch.E, pitch.A, pitch.D, pitch.G, pitch.B, pitch.E},
			spelled:   "E A D G B E",
		},
		{
			name:      "fifths bass",
			root:      pitch.C,
			intervals: pitch.Intervals(7, 7, 7),
			want:      []pitch.Class{pitch.C, pitch.G, pitch.D, pitch.A},
			spelled:   "C G D A",
		},
		{
			name:    "single string",
			root:    pitch.A,
			want:    []pitch.Class{pitch.A},
			spelled: "A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tu := FromIntervals(tt.root, tt.intervals...)
			if got := tu.OpenStrings(); !slices.Equal(got, tt.want) {
				t.Errorf("OpenStrings() = %v, want %v", got, tt.want)
			}
			if tu.Strings() != len(tt.want) {
				t.Errorf("Strings() = %d, want %d", tu.Strings(), len(tt.want))
			}
			if got := tu.String(true); got != tt.spelled {
				t.Errorf("String(true) = %q, want %q", got, tt.spelled)
			}
		})
	}
}

func TestFromTemplate(t *testing.T) {
	t.Parallel()

	eFlat := FromIntervals(pitch.DSharp, pitch.Intervals(5, 5, 5, 4, 5)...)
	if got, want := eFlat.String(true), "E♭ A♭ D♭ G♭ B♭ E♭"; got != want {
		t.Errorf("E♭ tuning = %q, want %q", got, want)
	}

	standard, err := FromTemplate(pitch.E, eFlat)
	if err != nil {
		t.Fatalf("FromTemplate: %v", err)
	}
	if got, want := standard.String(false), "E A D G B E"; got != want {
		t.Errorf("derived tuning = %q, want %q", got, want)
	}
	if !slices.Equal(standard.Intervals(), eFlat.Intervals()) {
		t.Error("derived tuning does not share template intervals")
	}
	if standard.Equal(eFlat) {
		t.Error("tunings with different roots compare equal")
	}

	if _, err := FromTemplate(pitch.E, nil); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("FromTemplate(nil) err = %v, want ErrNoTemplate", err)
	}
}

func TestIntervalsAreCopied(t *testing.T) {
	t.Parallel()

	ivs := pitch.Intervals(5, 5)
	tu := FromIntervals(pitch.E, ivs...)
	ivs[0] = 7
	got := tu.Intervals()
	got[1] = 7
	if want := pitch.Intervals(5, 5); !slices.Equal(tu.Intervals(), want) {
		t.Errorf("Intervals() = %v after caller mutation, want %v", tu.Intervals(), want)
	}
}
