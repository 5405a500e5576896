// Package ansi holds the SGR codes used for plain stderr status output.
// Styled views use lipgloss instead.
package ansi

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

// Paint wraps s in code and a reset. An empty code returns s unchanged.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + Reset
}
