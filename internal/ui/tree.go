package ui

import (
	"strings"

	"github.com/papapumpkin/lazyscales/internal/ansi"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
)

// TreeRenderer draws a family taxonomy with box-drawing branches. A family
// reachable from several parents is drawn under each of them.
type TreeRenderer struct {
	// UseColor controls whether ANSI escape codes are emitted.
	UseColor bool

	// Members adds each family's direct members below its subfamilies.
	Members bool
}

// FamilyTree renders tx from root, one family or member per line.
func FamilyTree[T comparable](r TreeRenderer, tx *taxonomy.Taxonomy[T], root taxonomy.Family) string {
	var sb strings.Builder
	sb.WriteString(r.paint(ansi.Bold+ansi.Cyan, tx.Name(root)))
	sb.WriteByte('\n')
	writeBranches(&sb, r, tx, root, "")
	return sb.String()
}

func writeBranches[T comparable](sb *strings.Builder, r TreeRenderer, tx *taxonomy.Taxonomy[T], f taxonomy.Family, prefix string) {
	subs := tx.Subfamilies(f)
	var members []taxonomy.Member[T]
	if r.Members {
		members = tx.DirectMembers(f)
	}
	total := len(subs) + len(members)

	i := 0
	for _, sub := range subs {
		last := i == total-1
		sb.WriteString(prefix + branch(last))
		sb.WriteString(r.paint(ansi.Bold, tx.Name(sub)))
		sb.WriteByte('\n')
		writeBranches(sb, r, tx, sub, prefix+indent(last))
		i++
	}
	for _, m := range members {
		last := i == total-1
		sb.WriteString(prefix + branch(last))
		sb.WriteString(r.paint(ansi.Dim, m.Name))
		sb.WriteByte('\n')
		i++
	}
}

func (r TreeRenderer) paint(code, s string) string {
	if !r.UseColor {
		return s
	}
	return ansi.Paint(code, s)
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}
