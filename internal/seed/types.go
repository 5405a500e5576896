// Package seed loads scale and tuning catalogs from TOML files into a
// library. A catalog file lists scale families and tuning families; the
// built-in catalog is embedded and returned by Default.
package seed

// File is one parsed catalog file.
type File struct {
	ScaleFamilies  []ScaleFamily  `toml:"scale_family"`
	TuningFamilies []TuningFamily `toml:"tuning_family"`

	// Source names the file for validation messages. It is not read from TOML.
	Source string `toml:"-"`
}

// ScaleFamily declares a family and the scales directly inside it. A family
// may be declared more than once, across files or within one; declarations
// are merged by name.
type ScaleFamily struct {
	Name   string       `toml:"name"`
	Parent string       `toml:"parent"`
	Scales []ScaleEntry `toml:"scale"`
}

// ScaleEntry is a scale given by its step intervals in semitones. With more
// than one name, names[i] is the mode starting on note i+1.
type ScaleEntry struct {
	Names     []string `toml:"names"`
	Intervals []int    `toml:"intervals"`
}

// TuningFamily declares a family of tunings.
type TuningFamily struct {
	Name    string        `toml:"name"`
	Parent  string        `toml:"parent"`
	Tunings []TuningEntry `toml:"tuning"`
}

// TuningEntry is a tuning given either by intervals between strings or by
// the name of another tuning whose intervals it reuses.
type TuningEntry struct {
	Name      string `toml:"name"`
	Root      string `toml:"root"`
	Intervals []int  `toml:"intervals"`
	Template  string `toml:"template"`
}
