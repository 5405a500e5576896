package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/taxonomy"
)

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List known scales",
	Args:  cobra.NoArgs,
	RunE:  runScales,
}

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Inspect a single scale",
}

var scaleShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a scale's formula, notes and aliases",
	Args:  cobra.ExactArgs(1),
	RunE:  runScaleShow,
}

func init() {
	scalesCmd.Flags().String("family", "", "only scales in this family and its subfamilies")
	scalesCmd.Flags().Bool("formula", false, "print each scale's formula")
	rootCmd.AddCommand(scalesCmd)

	scaleShowCmd.Flags().String("root", "C", "root note")
	scaleCmd.AddCommand(scaleShowCmd)
	rootCmd.AddCommand(scaleCmd)
}

func runScales(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	family, _ := cmd.Flags().GetString("family")
	withFormula, _ := cmd.Flags().GetBool("formula")

	names := s.lib.ScaleNames()
	if family != "" {
		f, ok := s.lib.Scales.Find(family)
		if !ok {
			return fmt.Errorf("%w: %q", taxonomy.ErrFamilyNotFound, family)
		}
		names = nil
		for _, m := range s.lib.Scales.AllMembers(f) {
			names = append(names, m.Name)
		}
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		if !withFormula {
			fmt.Fprintln(out, name)
			continue
		}
		pos, _ := s.lib.ScaleByName(name)
		formula, err := s.lib.Catalog.Formula(pos)
		if err != nil {
			return err
		}
		// Formula leads with the position's primary name; show the alias asked for.
		if _, rest, ok := strings.Cut(formula, ": "); ok {
			formula = rest
		}
		fmt.Fprintf(out, "%-28s %s\n", name, formula)
	}
	return nil
}

func runScaleShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	root, _ := cmd.Flags().GetString("root")
	ns, err := s.noteSet(args[0], root)
	if err != nil {
		return err
	}
	pos := ns.Position()
	formula, err := s.lib.Catalog.Formula(pos)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formula)
	fmt.Fprintf(out, "notes:     %s\n", spellNotes(ns))
	fmt.Fprintf(out, "steps:     %s\n", joinSteps(ns.Intervals()))
	if names := s.lib.Catalog.Names(pos); len(names) > 1 {
		fmt.Fprintf(out, "also:      %s\n", strings.Join(names[1:], ", "))
	}

	var fams []string
	for _, f := range s.lib.Scales.FamiliesOf(pos) {
		fams = append(fams, s.lib.Scales.Name(f))
	}
	if len(fams) > 0 {
		fmt.Fprintf(out, "families:  %s\n", strings.Join(fams, ", "))
	}

	deg := ns.Degree()
	if deg > 1 {
		var modes []string
		for r := 1; r < deg; r++ {
			mp, err := s.lib.Catalog.ModeOf(pos, r)
			if err != nil {
				return err
			}
			if n := s.lib.Catalog.Name(mp); n != "" {
				modes = append(modes, fmt.Sprintf("%d:%s", r+1, n))
			}
		}
		if len(modes) > 0 {
			fmt.Fprintf(out, "modes:     %s\n", strings.Join(modes, ", "))
		}
	}
	return nil
}

func spellNotes(ns *noteset.NoteSet) string {
	pitches := ns.Pitches()
	parts := make([]string, len(pitches))
	for i, p := range pitches {
		parts[i] = ns.Spell(p)
	}
	return strings.Join(parts, " ")
}

func joinSteps(ivs []pitch.Interval) string {
	parts := make([]string, len(ivs))
	for i, iv := range ivs {
		parts[i] = strconv.Itoa(int(iv))
	}
	return strings.Join(parts, " ")
}
