package seed

import (
	"github.com/papapumpkin/lazyscales/internal/library"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
)

// Export describes lib as a catalog file. Every scale is written as a single
// named entry and every tuning by its intervals, so applying the result to a
// fresh library reproduces the same names, families and rings.
func Export(lib *library.Library) *File {
	f := &File{Source: "export"}

	scales := lib.Scales
	for _, fam := range scales.AllSubfamilies(scales.Root()) {
		for i, parent := range scales.Parents(fam) {
			decl := ScaleFamily{Name: scales.Name(fam), Parent: parentName(scales, parent)}
			if i == 0 {
				for _, m := range scales.DirectMembers(fam) {
					ivs, err := lib.Catalog.Intervals(m.Item)
					if err != nil {
						continue
					}
					decl.Scales = append(decl.Scales, ScaleEntry{Names: []string{m.Name}, Intervals: fromIntervals(ivs)})
				}
			}
			f.ScaleFamilies = append(f.ScaleFamilies, decl)
		}
	}

	tunings := lib.Tunings
	for _, fam := range tunings.AllSubfamilies(tunings.Root()) {
		for i, parent := range tunings.Parents(fam) {
			decl := TuningFamily{Name: tunings.Name(fam), Parent: parentName(tunings, parent)}
			if i == 0 {
				for _, m := range tunings.DirectMembers(fam) {
					decl.Tunings = append(decl.Tunings, TuningEntry{
						Name:      m.Name,
						Root:      m.Item.Root().Flat(),
						Intervals: fromIntervals(m.Item.Intervals()),
					})
				}
			}
			f.TuningFamilies = append(f.TuningFamilies, decl)
		}
	}
	return f
}

func parentName[T comparable](tx *taxonomy.Taxonomy[T], f taxonomy.Family) string {
	if f == tx.Root() {
		return ""
	}
	return tx.Name(f)
}
