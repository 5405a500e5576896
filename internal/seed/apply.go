package seed

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/lazyscales/internal/library"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
)

// Stats counts what an Apply call touched.
type Stats struct {
	ScaleFamilies  int
	Scales         int
	TuningFamilies int
	Tunings        int
}

// Apply validates f and loads it into lib. Families are matched by name, so
// applying the same file twice leaves the library unchanged.
func Apply(lib *library.Library, f *File) (Stats, error) {
	if verrs := f.Validate(lib.TuningNames()...); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i := range verrs {
			errs[i] = &verrs[i]
		}
		return Stats{}, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	var st Stats
	for _, fam := range f.ScaleFamilies {
		parent, err := resolveParent(lib.Scales, fam.Parent, lib.ScaleFamily)
		if err != nil {
			return st, err
		}
		id, err := lib.ScaleFamily(parent, fam.Name)
		if err != nil {
			return st, err
		}
		st.ScaleFamilies++

		for _, s := range fam.Scales {
			ivs := toIntervals(s.Intervals)
			if len(s.Names) == 1 {
				_, err = lib.NewScale(id, s.Names[0], ivs)
			} else {
				_, err = lib.NewModes(id, s.Names, ivs)
			}
			if err != nil {
				return st, fmt.Errorf("%s: %w", f.Source, err)
			}
			st.Scales += countNames(s.Names)
		}
	}

	type pendingTuning struct {
		family taxonomy.Family
		entry  TuningEntry
	}
	var pending []pendingTuning
	for _, fam := range f.TuningFamilies {
		parent, err := resolveParent(lib.Tunings, fam.Parent, lib.TuningFamily)
		if err != nil {
			return st, err
		}
		id, err := lib.TuningFamily(parent, fam.Name)
		if err != nil {
			return st, err
		}
		st.TuningFamilies++
		for _, t := range fam.Tunings {
			pending = append(pending, pendingTuning{family: id, entry: t})
		}
	}

	// Templates may point forward in the file; keep passing over the
	// remaining tunings until every template resolves.
	for len(pending) > 0 {
		var next []pendingTuning
		for _, p := range pending {
			ok, err := applyTuning(lib, p.family, p.entry)
			if err != nil {
				return st, fmt.Errorf("%s: %w", f.Source, err)
			}
			if !ok {
				next = append(next, p)
				continue
			}
			st.Tunings++
		}
		if len(next) == len(pending) {
			return st, fmt.Errorf("%w: %q", ErrUnknownTemplate, next[0].entry.Template)
		}
		pending = next
	}

	lib.Logger().Info("seed: catalog applied",
		"source", f.Source,
		"scale_families", st.ScaleFamilies,
		"scales", st.Scales,
		"tuning_families", st.TuningFamilies,
		"tunings", st.Tunings)
	return st, nil
}

// applyTuning adds one tuning. It reports false when the tuning's template
// has not been added yet.
func applyTuning(lib *library.Library, family taxonomy.Family, t TuningEntry) (bool, error) {
	root, err := pitch.Parse(t.Root)
	if err != nil {
		return false, fmt.Errorf("tuning %q: %w", t.Name, err)
	}
	if t.Template == "" {
		_, err := lib.NewTuning(family, t.Name, root, toIntervals(t.Intervals)...)
		return err == nil, err
	}
	template, ok := lib.TuningByName(t.Template)
	if !ok {
		return false, nil
	}
	_, err = lib.NewDerivedTuning(family, t.Name, root, template)
	return err == nil, err
}

// resolveParent finds the named parent family, creating it under the root
// when no family has that name yet. An empty name means the root.
func resolveParent[T comparable](tx *taxonomy.Taxonomy[T], name string, ensure func(taxonomy.Family, string) (taxonomy.Family, error)) (taxonomy.Family, error) {
	if name == "" {
		return tx.Root(), nil
	}
	if f, ok := tx.Find(name); ok {
		return f, nil
	}
	return ensure(tx.Root(), name)
}

func countNames(names []string) int {
	n := 0
	for _, name := range names {
		if name != "" {
			n++
		}
	}
	return n
}
