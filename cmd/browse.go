package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/lazyscales/internal/fretboard"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/seed"
	"github.com/papapumpkin/lazyscales/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Explore scale families on a live fretboard",
	Long: `Browse opens an interactive view: the scale family listing on the left and
the fretboard for the highlighted scale below it. Press p to pin a scale and
compare it against the next one you highlight.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("root", "C", "initial root note")
	browseCmd.Flags().String("tuning", "", "initial tuning (default from config)")
	browseCmd.Flags().Int("frets", fretboard.DefaultFrets, "initial number of frets")
	browseCmd.Flags().String("watch", "", "reload catalog files from this directory while browsing")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	rootName, _ := cmd.Flags().GetString("root")
	root, err := pitch.Parse(rootName)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Root:   root,
		Tuning: s.cfg.Tuning,
		Frets:  s.cfg.Frets,
		Flat:   s.cfg.Flat,
	}

	if dir, _ := cmd.Flags().GetString("watch"); dir != "" {
		if err := applySeedPath(s.lib, dir); err != nil {
			return err
		}
		w, err := seed.NewWatcher(dir)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		opts.Changes = w.Changes
		opts.Reload = func(c seed.Change) error {
			_, err := reloadChange(s.lib, c)
			return err
		}
	}

	return tui.Run(s.lib, opts)
}
