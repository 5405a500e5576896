package fretboard

import (
	"strings"
	"unicode/utf8"
)

const tabWidth = 6

// Tab prints the grid as plain text, highest string on top. Every fret takes
// tabWidth columns. Selected cells show their pitch; pinned-only cells are
// wrapped in parentheses. Unselected frets show '+' on octave frets, '|' on
// the fifth and seventh, and '-' elsewhere.
func Tab(g Grid, flat bool) string {
	var b strings.Builder
	for i := len(g.Strings) - 1; i >= 0; i-- {
		var line strings.Builder
		for f, c := range g.Strings[i].Cells {
			cell := marker(f)
			switch c.State {
			case ActiveOnly, Both:
				cell = c.Pitch.Name(flat)
			case PinnedOnly:
				cell = "(" + c.Pitch.Name(flat) + ")"
			}
			line.WriteString(cell)
			if pad := tabWidth - utf8.RuneCountInString(cell); pad > 0 {
				line.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func marker(fret int) string {
	switch fret % 12 {
	case 0:
		return "+"
	case 5, 7:
		return "|"
	default:
		return "-"
	}
}
