package seed

import (
	"fmt"
	"slices"

	"github.com/papapumpkin/lazyscales/internal/pitch"
)

// Validate checks f for structural problems: missing names, intervals that
// do not close on an octave, bad roots and unresolved tuning templates.
// Templates may refer to tunings in f or to any name in known.
func (f *File) Validate(known ...string) []ValidationError {
	var errs []ValidationError
	add := func(cat ValidationCategory, family, entry string, err error) {
		errs = append(errs, ValidationError{
			Category: cat,
			Source:   f.Source,
			Family:   family,
			Entry:    entry,
			Err:      err,
		})
	}

	for i, fam := range f.ScaleFamilies {
		if fam.Name == "" {
			add(ValCatMissingField, "", fmt.Sprintf("scale_family[%d]", i), fmt.Errorf("%w: name", ErrMissingField))
			continue
		}
		for j, s := range fam.Scales {
			entry := fmt.Sprintf("scale[%d]", j)
			if len(s.Names) > 0 && s.Names[0] != "" {
				entry = s.Names[0]
			} else {
				add(ValCatMissingField, fam.Name, entry, fmt.Errorf("%w: names", ErrMissingField))
			}
			if len(s.Intervals) == 0 {
				add(ValCatMissingField, fam.Name, entry, fmt.Errorf("%w: intervals", ErrMissingField))
				continue
			}
			if sum := sumOf(s.Intervals); sum <= 0 || sum%pitch.Count != 0 {
				add(ValCatNotAnOctave, fam.Name, entry, fmt.Errorf("%w: sum is %d", ErrNotAnOctave, sum))
			} else if wholeOctaves(s.Intervals) {
				add(ValCatNotAnOctave, fam.Name, entry, fmt.Errorf("%w: every step is a whole octave", ErrNotAnOctave))
			}
			if len(s.Names) > len(s.Intervals) {
				add(ValCatTooManyNames, fam.Name, entry,
					fmt.Errorf("%w: %d names for %d notes", ErrTooManyNames, len(s.Names), len(s.Intervals)))
			}
		}
	}

	tunings := slices.Clone(known)
	for _, fam := range f.TuningFamilies {
		for _, t := range fam.Tunings {
			if t.Name != "" {
				tunings = append(tunings, t.Name)
			}
		}
	}

	for i, fam := range f.TuningFamilies {
		if fam.Name == "" {
			add(ValCatMissingField, "", fmt.Sprintf("tuning_family[%d]", i), fmt.Errorf("%w: name", ErrMissingField))
			continue
		}
		for j, t := range fam.Tunings {
			entry := t.Name
			if entry == "" {
				entry = fmt.Sprintf("tuning[%d]", j)
				add(ValCatMissingField, fam.Name, entry, fmt.Errorf("%w: name", ErrMissingField))
			}
			if t.Root == "" {
				add(ValCatMissingField, fam.Name, entry, fmt.Errorf("%w: root", ErrMissingField))
			} else if _, err := pitch.Parse(t.Root); err != nil {
				add(ValCatBadRoot, fam.Name, entry, fmt.Errorf("%w: %w", ErrBadRoot, err))
			}
			switch {
			case t.Template != "" && len(t.Intervals) > 0:
				add(ValCatAmbiguous, fam.Name, entry, ErrAmbiguousTuning)
			case t.Template != "":
				if t.Template == t.Name || !slices.Contains(tunings, t.Template) {
					add(ValCatUnknownTemplate, fam.Name, entry, fmt.Errorf("%w: %q", ErrUnknownTemplate, t.Template))
				}
			case len(t.Intervals) == 0:
				add(ValCatMissingField, fam.Name, entry, fmt.Errorf("%w: intervals or template", ErrMissingField))
			}
		}
	}

	return errs
}

func wholeOctaves(ints []int) bool {
	for _, v := range ints {
		if v%pitch.Count != 0 {
			return false
		}
	}
	return true
}

func sumOf(ints []int) int {
	total := 0
	for _, v := range ints {
		total += v
	}
	return total
}

func toIntervals(ints []int) []pitch.Interval {
	return pitch.Intervals(ints...)
}

func fromIntervals(ivs []pitch.Interval) []int {
	out := make([]int, len(ivs))
	for i, iv := range ivs {
		out[i] = int(iv)
	}
	return out
}
