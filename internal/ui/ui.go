// Package ui provides stderr status output and terminal views for lazyscales.
package ui

import (
	"fmt"
	"os"

	"github.com/papapumpkin/lazyscales/internal/ansi"
	"github.com/papapumpkin/lazyscales/internal/seed"
)

// Printer writes human-readable status lines to stderr.
type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Banner() {
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ╔═══════════════════════════════╗"+ansi.Reset)
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ║"+ansi.Reset+ansi.Bold+"   LAZYSCALES  "+ansi.Dim+"scale explorer"+ansi.Reset+ansi.Bold+ansi.Cyan+"  ║"+ansi.Reset)
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ╚═══════════════════════════════╝"+ansi.Reset)
	fmt.Fprintln(os.Stderr)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Yellow+ansi.Bold+"⚠ "+ansi.Reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Green+ansi.Bold+"✓ "+ansi.Reset+"%s\n", msg)
}

// SeedValidateResult reports the outcome of validating one catalog file.
func (p *Printer) SeedValidateResult(source string, scales, tunings int, errs []seed.ValidationError) {
	if len(errs) == 0 {
		fmt.Fprintf(os.Stderr, ansi.Green+ansi.Bold+"✓ catalog %q"+ansi.Reset+" %d scale(s), %d tuning(s), no errors\n",
			source, scales, tunings)
		return
	}
	fmt.Fprintf(os.Stderr, ansi.Red+ansi.Bold+"✗ catalog %q"+ansi.Reset+" %d error(s):\n", source, len(errs))
	for i := range errs {
		fmt.Fprintf(os.Stderr, "  "+ansi.Red+"• "+ansi.Reset+"%s\n", errs[i].Error())
	}
}

// SeedApplied reports what applying a catalog added.
func (p *Printer) SeedApplied(source string, st seed.Stats) {
	fmt.Fprintf(os.Stderr, ansi.Green+"◆ applied"+ansi.Reset+" %s "+ansi.Dim+"(%d scale famil%s, %d scale%s, %d tuning famil%s, %d tuning%s)"+ansi.Reset+"\n",
		source,
		st.ScaleFamilies, familySuffix(st.ScaleFamilies), st.Scales, pluralS(st.Scales),
		st.TuningFamilies, familySuffix(st.TuningFamilies), st.Tunings, pluralS(st.Tunings))
}

// SeedChange reports a catalog file event seen by the watcher.
func (p *Printer) SeedChange(c seed.Change) {
	color := ansi.Cyan
	if c.Kind == seed.ChangeRemoved {
		color = ansi.Yellow
	}
	fmt.Fprintf(os.Stderr, color+"↻ %s"+ansi.Reset+" %s\n", c.Kind, c.File)
}

// Stored reports a library written to or read from the graph store.
func (p *Printer) Stored(verb, path string, scales, tunings int) {
	fmt.Fprintf(os.Stderr, ansi.Green+"◆ %s"+ansi.Reset+" %s "+ansi.Dim+"(%d scale%s, %d tuning%s)"+ansi.Reset+"\n",
		verb, path, scales, pluralS(scales), tunings, pluralS(tunings))
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func familySuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
