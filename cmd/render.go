package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/lazyscales/internal/fretboard"
	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/ui"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw a scale on the fretboard",
	Long: `Render draws the active scale, and optionally a pinned second scale, across
the strings of a tuning. Cells in both scales are marked separately.`,
	Example: `  lazyscales render --scale Dorian --root D
  lazyscales render --scale "Minor Pentatonic" --root A --pin-scale Aeolian --pin-root A
  lazyscales render --scale Ionian --root G --tuning "Standard bass tuning" --tab`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("scale", "", "active scale name")
	renderCmd.Flags().String("root", "C", "active scale root")
	renderCmd.Flags().String("pin-scale", "", "pinned scale name")
	renderCmd.Flags().String("pin-root", "", "pinned scale root (default: --root)")
	renderCmd.Flags().String("tuning", "", "tuning name (default from config)")
	renderCmd.Flags().Int("frets", fretboard.DefaultFrets, "number of frets to draw")
	renderCmd.Flags().Bool("tab", false, "plain tablature instead of the styled board")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	scaleName, _ := cmd.Flags().GetString("scale")
	root, _ := cmd.Flags().GetString("root")
	pinScale, _ := cmd.Flags().GetString("pin-scale")
	pinRoot, _ := cmd.Flags().GetString("pin-root")
	asTab, _ := cmd.Flags().GetBool("tab")

	var active, pinned *noteset.NoteSet
	if scaleName != "" {
		if active, err = s.noteSet(scaleName, root); err != nil {
			return err
		}
	}
	if pinScale != "" {
		if pinRoot == "" {
			pinRoot = root
		}
		if pinned, err = s.noteSet(pinScale, pinRoot); err != nil {
			return err
		}
	}

	t, err := s.lib.Tuning(s.cfg.Tuning)
	if err != nil {
		return err
	}
	g, err := fretboard.Render(t, active, pinned, s.cfg.Frets)
	if err != nil {
		return err
	}
	s.logger.Debug("rendered fretboard", "tuning", s.cfg.Tuning, "frets", g.Frets, "strings", len(g.Strings))

	out := cmd.OutOrStdout()
	if asTab {
		fmt.Fprint(out, fretboard.Tab(g, s.cfg.Flat))
	} else {
		fmt.Fprintln(out, ui.RenderFretboard(g, s.cfg.Flat))
		if !g.Empty() {
			fmt.Fprintln(out, ui.Legend())
		}
	}
	for _, ns := range []*noteset.NoteSet{active, pinned} {
		if ns == nil {
			continue
		}
		line, err := s.lib.Catalog.Formula(ns.Position())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n  %s\n", line, ns)
	}
	return nil
}
