package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/lazyscales/internal/taxonomy"
	"github.com/papapumpkin/lazyscales/internal/ui"
)

var familiesCmd = &cobra.Command{
	Use:   "families [FAMILY]",
	Short: "Print the scale or tuning family tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFamilies,
}

func init() {
	familiesCmd.Flags().Bool("tunings", false, "show the tuning families instead of scale families")
	familiesCmd.Flags().Bool("members", false, "list members under each family")
	familiesCmd.Flags().Bool("no-color", false, "disable colored output")
	rootCmd.AddCommand(familiesCmd)
}

func runFamilies(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	tunings, _ := cmd.Flags().GetBool("tunings")
	members, _ := cmd.Flags().GetBool("members")
	noColor, _ := cmd.Flags().GetBool("no-color")
	r := ui.TreeRenderer{UseColor: !noColor, Members: members}

	var out string
	if tunings {
		out, err = familyTree(r, s.lib.Tunings, args)
	} else {
		out, err = familyTree(r, s.lib.Scales, args)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func familyTree[T comparable](r ui.TreeRenderer, tx *taxonomy.Taxonomy[T], args []string) (string, error) {
	root := tx.Root()
	if len(args) == 1 {
		f, ok := tx.Find(args[0])
		if !ok {
			return "", fmt.Errorf("%w: %q", taxonomy.ErrFamilyNotFound, args[0])
		}
		root = f
	}
	return ui.FamilyTree(r, tx, root), nil
}
