package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tuningsCmd = &cobra.Command{
	Use:   "tunings",
	Short: "List known tunings and their open strings",
	Args:  cobra.NoArgs,
	RunE:  runTunings,
}

func init() {
	rootCmd.AddCommand(tuningsCmd)
}

func runTunings(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, name := range s.lib.TuningNames() {
		t, err := s.lib.Tuning(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == s.cfg.Tuning {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-28s %s\n", marker, name, t.String(s.cfg.Flat))
	}
	return nil
}
