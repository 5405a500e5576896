package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold: pinned scale
	colorDanger     = lipgloss.Color("#FF5252") // Red: errors
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface: footer bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Row icons.
const (
	iconFamily = "▸"
	iconScale  = "♪"
	iconPinned = "⊙"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusPinned = lipgloss.NewStyle().
				Foreground(colorAccent)

	styleBreadcrumb = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleFormula = lipgloss.NewStyle().
			Foreground(colorWhite).
			Padding(0, 1)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleFooter = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMuted).
			Padding(0, 1)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleListPane = lipgloss.NewStyle().
			Width(listWidth).
			PaddingRight(2)
)

// listWidth is the width of the family list column.
const listWidth = 34

// CompactWidth is the terminal width below which the footer drops descriptions.
const CompactWidth = 80
