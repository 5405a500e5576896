package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/lazyscales/internal/fretboard"
)

// Fretboard palette.
var (
	colorActive = lipgloss.Color("#00BFFF") // Cyan: active scale
	colorPinned = lipgloss.Color("#FFD700") // Gold: pinned scale
	colorBoth   = lipgloss.Color("#00E676") // Green: both scales
	colorMuted  = lipgloss.Color("#636363") // Gray: wire and markers
	colorOpen   = lipgloss.Color("#EEEEEE")
)

const cellWidth = 5

var (
	styleCell = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)

	styleActive = styleCell.Foreground(colorActive)
	stylePinned = styleCell.Foreground(colorPinned)
	styleBoth   = styleCell.Foreground(colorBoth).Bold(true)
	styleWire   = styleCell.Foreground(colorMuted)

	styleOpenLabel = lipgloss.NewStyle().Width(3).Align(lipgloss.Right).Foreground(colorOpen).Bold(true)
	styleFretNum   = styleCell.Foreground(colorMuted)
	styleCursor    = lipgloss.NewStyle().Reverse(true)
)

// FretboardView renders a fretboard grid with lipgloss. Strings are drawn
// highest first, like tablature.
type FretboardView struct {
	Flat bool
	// Cursor highlights one fret column; -1 disables it.
	Cursor int
}

// RenderFretboard renders g without a cursor.
func RenderFretboard(g fretboard.Grid, flat bool) string {
	return FretboardView{Flat: flat, Cursor: -1}.Render(g)
}

// Render draws g, a fret-number header and a legend.
func (v FretboardView) Render(g fretboard.Grid) string {
	if g.Empty() {
		return lipgloss.NewStyle().Foreground(colorMuted).Render("(nothing selected)")
	}

	var sb strings.Builder
	header := make([]string, 0, g.Frets+2)
	header = append(header, strings.Repeat(" ", 4))
	for f := 0; f <= g.Frets; f++ {
		header = append(header, styleFretNum.Render(strconv.Itoa(f)))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	sb.WriteByte('\n')

	for s := len(g.Strings) - 1; s >= 0; s-- {
		row := g.Strings[s]
		parts := make([]string, 0, len(row.Cells)+2)
		parts = append(parts, styleOpenLabel.Render(row.Open.Name(v.Flat)), "║")
		for f, c := range row.Cells {
			cell := v.cell(c, f)
			if f == v.Cursor {
				cell = styleCursor.Render(cell)
			}
			parts = append(parts, cell)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		sb.WriteByte('\n')
	}
	sb.WriteString(Legend())
	return sb.String()
}

func (v FretboardView) cell(c fretboard.Cell, fret int) string {
	if !c.State.Selected() {
		return styleWire.Render(wire(fret))
	}
	label := c.Pitch.Name(v.Flat)
	if c.Root {
		label = "[" + label + "]"
	}
	switch c.State {
	case fretboard.Both:
		return styleBoth.Render(label)
	case fretboard.PinnedOnly:
		return stylePinned.Render(label)
	default:
		return styleActive.Render(label)
	}
}

// wire draws an unselected cell, dotted on the inlay frets.
func wire(fret int) string {
	switch fret % 12 {
	case 0:
		if fret == 0 {
			return "─────"
		}
		return "──:──"
	case 3, 5, 7, 9:
		return "──·──"
	default:
		return "─────"
	}
}

// Legend explains the cell colours.
func Legend() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(colorActive).Render("■ active  "),
		lipgloss.NewStyle().Foreground(colorPinned).Render("■ pinned  "),
		lipgloss.NewStyle().Foreground(colorBoth).Render("■ both  "),
		lipgloss.NewStyle().Foreground(colorMuted).Render("[x] root"),
	)
}
