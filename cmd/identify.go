package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify STEP... | NOTE...",
	Short: "Name a scale from its steps or notes",
	Long: `Identify looks up a step sequence in the catalog. Steps are semitone counts
that together span whole octaves. Note names are turned into the steps between
consecutive notes, wrapping from the last back to the first.`,
	Example: `  lazyscales identify 2 1 2 2 2 1 2
  lazyscales identify A C D E G`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	steps, err := parseIntervals(args)
	if err != nil {
		return err
	}

	id := s.lib.Identify(steps)
	out := cmd.OutOrStdout()
	switch {
	case !id.Found:
		s.printer.Warn(fmt.Sprintf("%s: not in the catalog", joinSteps(steps)))
		return nil
	case !id.Named():
		fmt.Fprintf(out, "unnamed mode (%s)\n", id.Position)
	default:
		for _, name := range id.Names {
			fmt.Fprintln(out, name)
		}
	}
	formula, err := s.lib.Catalog.Formula(id.Position)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formula)
	return nil
}
