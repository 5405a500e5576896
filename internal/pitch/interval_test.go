package pitch

import "testing"

func TestIntervalEquivalence(t *testing.T) {
	t.Parallel()

	if !Unison.Equivalent(Octave) {
		t.Error("Unison should be equivalent to Octave")
	}
	if !Interval(14).Equivalent(WholeTone) {
		t.Error("14 semitones should be equivalent to a whole tone")
	}
	if Tritone.Equivalent(Interval(5)) {
		t.Error("tritone should not be equivalent to a fourth")
	}
	if got := Interval(-1).Reduce(); got != 11 {
		t.Errorf("Interval(-1).Reduce() = %d, want 11", got)
	}
}

func TestNamedIntervalOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		iv    Interval
		short string
		alt   string
	}{
		{0, "T", ""},
		{1, "♭2", ""},
		{2, "2", "♭♭3"},
		{4, "3", "♭4"},
		{6, "♯4", "♭5"},
		{8, "♯5", "♭6"},
		{11, "7", ""},
		{12, "T", ""},
		{19, "5", "♭♭6"},
	}
	for _, tt := range tests {
		n := NamedIntervalOf(tt.iv)
		if n.ShortName() != tt.short || n.AltName() != tt.alt {
			t.Errorf("NamedIntervalOf(%d) = (%q, %q), want (%q, %q)",
				tt.iv, n.ShortName(), n.AltName(), tt.short, tt.alt)
		}
		if n.Semitones() != tt.iv.Reduce() {
			t.Errorf("NamedIntervalOf(%d).Semitones() = %d", tt.iv, n.Semitones())
		}
	}
}

func TestShortNameAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval NamedInterval
		previous string
		want     string
	}{
		{"no previous", MajorThird, "", "3"},
		{"repeated degree uses alternate", MajorThird, "♭3", "♭4"},
		{"different degree keeps primary", MajorThird, "2", "3"},
		{"no alternate keeps primary", MinorThird, "3", "♭3"},
		{"sharp four after four", DiminishedFifth, "4", "♭5"},
		{"sharp five after five", MinorSixth, "5", "♭6"},
		{"second after second", MajorSecond, "2", "♭♭3"},
		{"alternate repeats too keeps primary", NamedInterval{4, "3", "♭3"}, "♭3", "3"},
		{"sixth after flat six", MajorSixth, "♭6", "♭♭7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.interval.ShortNameAfter(tt.previous); got != tt.want {
				t.Errorf("ShortNameAfter(%q) = %q, want %q", tt.previous, got, tt.want)
			}
		})
	}
}

func TestNamedIntervalSum(t *testing.T) {
	t.Parallel()

	if got := Fifth.Sum(Fourth.Semitones()); got != PerfectUnison {
		t.Errorf("5 + 4 = %#v, want unison", got)
	}
	if got := MajorThird.Sum(MinorThird.Semitones()); got != Fifth {
		t.Errorf("3 + ♭3 = %#v, want 5", got)
	}
}

func TestSum(t *testing.T) {
	t.Parallel()

	if got := Sum(Intervals(2, 2, 1, 2, 2, 2, 1)); got != 12 {
		t.Errorf("Sum(major) = %d, want 12", got)
	}
	if got := Sum(nil); got != 0 {
		t.Errorf("Sum(nil) = %d, want 0", got)
	}
}
