package seed

import "errors"

// Sentinel errors for catalog validation.
var (
	// ErrMissingField indicates a required field (name, root, intervals) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrNotAnOctave indicates scale intervals that do not close on whole octaves.
	ErrNotAnOctave = errors.New("intervals do not span whole octaves")
	// ErrUnknownTemplate indicates a tuning template that names no tuning.
	ErrUnknownTemplate = errors.New("unknown tuning template")
	// ErrBadRoot indicates a tuning root that is not a note name.
	ErrBadRoot = errors.New("invalid root note")
	// ErrAmbiguousTuning indicates a tuning with both intervals and a template.
	ErrAmbiguousTuning = errors.New("tuning has both intervals and template")
	// ErrTooManyNames indicates more mode names than the scale has notes.
	ErrTooManyNames = errors.New("more names than notes")
	// ErrInvalid wraps the combined result of a failed Validate in Apply.
	ErrInvalid = errors.New("invalid catalog")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatMissingField    ValidationCategory = "missing_field"
	ValCatNotAnOctave     ValidationCategory = "not_an_octave"
	ValCatUnknownTemplate ValidationCategory = "unknown_template"
	ValCatBadRoot         ValidationCategory = "bad_root"
	ValCatAmbiguous       ValidationCategory = "ambiguous_tuning"
	ValCatTooManyNames    ValidationCategory = "too_many_names"
)

// ValidationError records a validation problem with its location.
type ValidationError struct {
	Category ValidationCategory
	Source   string
	Family   string
	Entry    string
	Err      error
}

// Error returns the source, family and entry context followed by the cause.
func (e *ValidationError) Error() string {
	s := e.Source
	if s == "" {
		s = "catalog"
	}
	if e.Family != "" {
		s += ": family " + e.Family
	}
	if e.Entry != "" {
		s += ": " + e.Entry
	}
	return s + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
