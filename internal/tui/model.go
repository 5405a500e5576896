package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/lazyscales/internal/fretboard"
	"github.com/papapumpkin/lazyscales/internal/library"
	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/scale"
	"github.com/papapumpkin/lazyscales/internal/seed"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
	"github.com/papapumpkin/lazyscales/internal/ui"
)

// MaxFrets bounds the fret count adjustable from the keyboard.
const MaxFrets = 24

// Options seeds the browser's initial state.
type Options struct {
	Root   pitch.Class
	Tuning string
	Frets  int
	Flat   bool

	// Changes, when set, delivers catalog file changes; Reload applies one
	// to the library before the listing refreshes.
	Changes <-chan seed.Change
	Reload  func(seed.Change) error
}

// Entry is one row of the family listing.
type Entry struct {
	Name     string
	IsFamily bool
	Family   taxonomy.Family
	Position scale.Position
}

// Model is the browser: a scale family listing above a live fretboard.
type Model struct {
	Lib    *library.Library
	Keys   KeyMap
	Width  int
	Height int

	Path    []taxonomy.Family
	Entries []Entry
	Cursor  int

	Root        pitch.Class
	Frets       int
	Flat        bool
	TuningNames []string
	TuningIdx   int

	Active *noteset.NoteSet
	Pinned *noteset.NoteSet

	Status string
	Err    error

	changes <-chan seed.Change
	reload  func(seed.Change) error
}

// NewModel builds a browser positioned at the root scale family.
func NewModel(lib *library.Library, opts Options) Model {
	m := Model{
		Lib:         lib,
		Keys:        DefaultKeyMap(),
		Path:        []taxonomy.Family{lib.Scales.Root()},
		Root:        opts.Root,
		Frets:       opts.Frets,
		Flat:        opts.Flat,
		TuningNames: lib.TuningNames(),
		changes:     opts.Changes,
		reload:      opts.Reload,
	}
	for i, name := range m.TuningNames {
		if name == opts.Tuning {
			m.TuningIdx = i
		}
	}
	m.refresh()
	return m
}

// Init starts listening for catalog changes when a channel was supplied.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return MsgCatalogChanged{Change: c}
	}
}

// Update handles key presses, resizes and catalog reloads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case MsgCatalogChanged:
		m.Err = nil
		if m.reload != nil {
			m.Err = m.reload(msg.Change)
		}
		if m.Err == nil {
			m.Status = fmt.Sprintf("reloaded %s", msg.Change.File)
		}
		m.TuningNames = m.Lib.TuningNames()
		m.refresh()
		return m, m.waitForChange()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Entries)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Enter):
		m.enter()
	case key.Matches(msg, m.Keys.Back):
		m.back()
	case key.Matches(msg, m.Keys.Pin):
		m.togglePin()
	case key.Matches(msg, m.Keys.RootUp):
		m.shiftRoot(1)
	case key.Matches(msg, m.Keys.RootDown):
		m.shiftRoot(-1)
	case key.Matches(msg, m.Keys.Tuning):
		if len(m.TuningNames) > 0 {
			m.TuningIdx = (m.TuningIdx + 1) % len(m.TuningNames)
		}
	case key.Matches(msg, m.Keys.Spelling):
		m.Flat = !m.Flat
		m.respell()
	case key.Matches(msg, m.Keys.MoreFrets):
		if m.Frets < MaxFrets {
			m.Frets++
		}
	case key.Matches(msg, m.Keys.LessFrets):
		if m.Frets > 0 {
			m.Frets--
		}
	}
	return m, nil
}

// current returns the family being listed.
func (m *Model) current() taxonomy.Family {
	return m.Path[len(m.Path)-1]
}

// refresh rebuilds the listing for the current family: subfamilies first,
// then member scales.
func (m *Model) refresh() {
	tx := m.Lib.Scales
	f := m.current()
	m.Entries = nil
	for _, sub := range tx.Subfamilies(f) {
		m.Entries = append(m.Entries, Entry{Name: tx.Name(sub), IsFamily: true, Family: sub})
	}
	for _, mem := range tx.DirectMembers(f) {
		m.Entries = append(m.Entries, Entry{Name: mem.Name, Position: mem.Item})
	}
	if m.Cursor >= len(m.Entries) {
		m.Cursor = max(len(m.Entries)-1, 0)
	}
}

func (m *Model) enter() {
	if len(m.Entries) == 0 {
		return
	}
	e := m.Entries[m.Cursor]
	if e.IsFamily {
		m.Path = append(m.Path, e.Family)
		m.Cursor = 0
		m.refresh()
		return
	}
	ns, err := m.noteSet(m.Root, e.Position)
	if err != nil {
		m.Err = err
		return
	}
	m.Active, m.Err = ns, nil
	m.Status = ""
}

func (m *Model) back() {
	if len(m.Path) <= 1 {
		return
	}
	left := m.current()
	m.Path = m.Path[:len(m.Path)-1]
	m.refresh()
	for i, e := range m.Entries {
		if e.IsFamily && e.Family == left {
			m.Cursor = i
		}
	}
}

// togglePin pins the active scale, or unpins when it is already pinned.
func (m *Model) togglePin() {
	switch {
	case m.Active == nil:
		m.Status = "select a scale to pin"
	case m.Active.Equal(m.Pinned):
		m.Pinned = nil
		m.Status = "unpinned"
	default:
		pinned, err := m.noteSet(m.Active.Root(), m.Active.Position())
		if err != nil {
			m.Err = err
			return
		}
		m.Pinned = pinned
		m.Status = "pinned " + m.describe(pinned)
	}
}

// shiftRoot moves the active root by steps semitones. The pinned scale keeps
// its own root.
func (m *Model) shiftRoot(steps int) {
	m.Root = pitch.Apply(m.Root, pitch.Interval(steps))
	if m.Active == nil {
		return
	}
	ns, err := m.noteSet(m.Root, m.Active.Position())
	if err != nil {
		m.Err = err
		return
	}
	m.Active = ns
}

// respell rebuilds the selected note sets in the current spelling. Earlier
// copies of the model keep the sets they had.
func (m *Model) respell() {
	for _, ns := range []**noteset.NoteSet{&m.Active, &m.Pinned} {
		if *ns == nil {
			continue
		}
		fresh, err := m.noteSet((*ns).Root(), (*ns).Position())
		if err != nil {
			m.Err = err
			return
		}
		*ns = fresh
	}
}

func (m *Model) noteSet(root pitch.Class, pos scale.Position) (*noteset.NoteSet, error) {
	ns, err := noteset.New(m.Lib.Catalog, root, pos)
	if err != nil {
		return nil, err
	}
	if !m.Flat {
		ns.SetSharp()
	}
	return ns, nil
}

// TuningName returns the selected tuning's name, or "".
func (m Model) TuningName() string {
	if len(m.TuningNames) == 0 {
		return ""
	}
	return m.TuningNames[m.TuningIdx]
}

// Grid renders the fretboard for the current selection.
func (m Model) Grid() (fretboard.Grid, error) {
	name := m.TuningName()
	if name == "" {
		return fretboard.Grid{Frets: m.Frets}, nil
	}
	t, err := m.Lib.Tuning(name)
	if err != nil {
		return fretboard.Grid{}, err
	}
	return fretboard.Render(t, m.Active, m.Pinned, m.Frets)
}

func (m Model) describe(ns *noteset.NoteSet) string {
	name := ns.Name()
	if name == "" {
		name = ns.Position().String()
	}
	return name + " in " + ns.Spell(ns.Root())
}

// View renders the status bar, breadcrumb, listing, formulas and fretboard.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.statusBar(), m.breadcrumb(), m.listing())

	if m.Active != nil {
		sections = append(sections, m.formula(m.Active, styleStatusLabel))
	}
	if m.Pinned != nil {
		sections = append(sections, m.formula(m.Pinned, styleStatusPinned))
	}

	g, err := m.Grid()
	if err != nil {
		sections = append(sections, styleError.Render(err.Error()))
	} else {
		sections = append(sections, ui.FretboardView{Flat: m.Flat, Cursor: -1}.Render(g))
	}

	if m.Err != nil {
		sections = append(sections, styleError.Render("error: "+m.Err.Error()))
	} else if m.Status != "" {
		sections = append(sections, styleRowNormal.Render(m.Status))
	}
	sections = append(sections, Footer{Width: m.Width, Bindings: FooterBindings(m.Keys)}.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusBar() string {
	spelling := "♯"
	if m.Flat {
		spelling = "♭"
	}
	tuningName := m.TuningName()
	if tuningName == "" {
		tuningName = "(none)"
	}
	parts := []string{
		"lazyscales",
		"root " + m.Root.Name(m.Flat),
		tuningName,
		fmt.Sprintf("%d frets", m.Frets),
		spelling,
	}
	bar := styleStatusBar
	if m.Width > 0 {
		bar = bar.Width(m.Width)
	}
	return bar.Render(strings.Join(parts, "  │  "))
}

func (m Model) breadcrumb() string {
	names := make([]string, len(m.Path))
	for i, f := range m.Path {
		names[i] = m.Lib.Scales.Name(f)
	}
	return styleBreadcrumb.Render(strings.Join(names, " › "))
}

// listing renders a window of entries around the cursor.
func (m Model) listing() string {
	if len(m.Entries) == 0 {
		return styleListPane.Render(styleRowNormal.Render("  (empty family)"))
	}
	rows := m.visibleRows()
	start := 0
	if m.Cursor >= rows {
		start = m.Cursor - rows + 1
	}
	end := min(start+rows, len(m.Entries))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := m.Entries[i]
		icon := iconScale
		if e.IsFamily {
			icon = iconFamily
		} else if m.Pinned != nil && e.Position == m.Pinned.Position() {
			icon = iconPinned
		}
		text := icon + " " + e.Name
		if i == m.Cursor {
			lines = append(lines, styleRowSelected.Render(selectionIndicator+text))
		} else {
			lines = append(lines, styleRowNormal.Render(" "+text))
		}
	}
	return styleListPane.Render(strings.Join(lines, "\n"))
}

func (m Model) visibleRows() int {
	if m.Height <= 0 {
		return 12
	}
	return max(m.Height/3, 4)
}

func (m Model) formula(ns *noteset.NoteSet, label lipgloss.Style) string {
	f, err := m.Lib.Catalog.Formula(ns.Position())
	if err != nil {
		return styleError.Render(err.Error())
	}
	return styleFormula.Render(label.Render(m.describe(ns)) + "  " + f + "  " + joinSpelled(ns))
}

func joinSpelled(ns *noteset.NoteSet) string {
	pitches := ns.Pitches()
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = ns.Spell(p)
	}
	return strings.Join(names, " ")
}
