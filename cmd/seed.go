package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/lazyscales/internal/library"
	"github.com/papapumpkin/lazyscales/internal/seed"
	"github.com/papapumpkin/lazyscales/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Work with scale and tuning catalog files",
}

var seedValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check catalog files without loading them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSeedValidate,
}

var seedImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Save the catalog library into the graph store",
	Args:  cobra.NoArgs,
	RunE:  runSeedImport,
}

var seedWatchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Apply catalog files in DIR as they change",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeedWatch,
}

var seedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the loaded library as a catalog file",
	Args:  cobra.NoArgs,
	RunE:  runSeedExport,
}

func init() {
	seedImportCmd.Flags().Bool("force", false, "replace an existing graph store")
	seedExportCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	seedCmd.AddCommand(seedValidateCmd)
	seedCmd.AddCommand(seedImportCmd)
	seedCmd.AddCommand(seedWatchCmd)
	seedCmd.AddCommand(seedExportCmd)
	rootCmd.AddCommand(seedCmd)
}

var errValidation = errors.New("catalog validation failed")

func runSeedValidate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	known := s.lib.TuningNames()

	failed := 0
	for _, path := range args {
		f, err := seed.Load(path)
		if err != nil {
			s.printer.Error(err.Error())
			failed++
			continue
		}
		errs := f.Validate(known...)
		s.printer.SeedValidateResult(f.Source, countScales(f), countTunings(f), errs)
		if len(errs) > 0 {
			failed++
			continue
		}
		for _, fam := range f.TuningFamilies {
			for _, t := range fam.Tunings {
				known = append(known, t.Name)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", errValidation, failed, len(args))
	}
	return nil
}

func runSeedImport(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	path := s.cfg.DBPath

	if force {
		for _, p := range []string{path, path + "-wal", path + "-shm"} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("removing %s: %w", p, err)
			}
		}
	}

	ctx := cmdContext(cmd)
	st, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := store.SaveLibrary(ctx, st, s.lib); err != nil {
		if errors.Is(err, store.ErrNotEmpty) {
			return fmt.Errorf("%w (use --force to replace it)", err)
		}
		return err
	}
	s.printer.Stored("saved", path, len(s.lib.ScaleNames()), len(s.lib.TuningNames()))
	return nil
}

func runSeedWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	dir := args[0]
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

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.printer.Info(fmt.Sprintf("watching %s (ctrl+c to stop)", dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			s.printer.SeedChange(change)
			st, err := reloadChange(s.lib, change)
			switch {
			case err != nil:
				s.printer.Error(err.Error())
			case change.Kind == seed.ChangeRemoved:
				s.printer.Warn("entries from a removed file stay loaded until restart")
			default:
				s.printer.SeedApplied(change.File, st)
			}
		}
	}
}

// reloadChange applies a modified catalog file to lib. Removals are a no-op:
// the library only grows.
func reloadChange(lib *library.Library, change seed.Change) (seed.Stats, error) {
	if change.Kind == seed.ChangeRemoved {
		return seed.Stats{}, nil
	}
	f, err := seed.Load(change.File)
	if err != nil {
		return seed.Stats{}, err
	}
	return seed.Apply(lib, f)
}

func runSeedExport(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	data, err := seed.Encode(seed.Export(s.lib))
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	s.printer.Success("exported " + out)
	return nil
}

func countScales(f *seed.File) int {
	n := 0
	for _, fam := range f.ScaleFamilies {
		for _, sc := range fam.Scales {
			n += len(sc.Names)
		}
	}
	return n
}

func countTunings(f *seed.File) int {
	n := 0
	for _, fam := range f.TuningFamilies {
		n += len(fam.Tunings)
	}
	return n
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
