package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/lazyscales/internal/config"
	"github.com/papapumpkin/lazyscales/internal/library"
	"github.com/papapumpkin/lazyscales/internal/logging"
	"github.com/papapumpkin/lazyscales/internal/noteset"
	"github.com/papapumpkin/lazyscales/internal/pitch"
	"github.com/papapumpkin/lazyscales/internal/seed"
	"github.com/papapumpkin/lazyscales/internal/store"
	"github.com/papapumpkin/lazyscales/internal/ui"
)

// session is the state shared by every command: resolved config, logger,
// and the scale library.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	lib     *library.Library
	printer *ui.Printer
}

// newSession loads configuration, applies command-line overrides and builds
// the library, either from the catalog files or from the graph store.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}
	if cmd.Flags().Changed("sharp") {
		sharp, _ := cmd.Flags().GetBool("sharp")
		cfg.Flat = !sharp
	}
	if f := cmd.Flags().Lookup("frets"); f != nil && f.Changed {
		cfg.Frets, _ = cmd.Flags().GetInt("frets")
	}
	if f := cmd.Flags().Lookup("tuning"); f != nil && f.Changed {
		cfg.Tuning, _ = cmd.Flags().GetString("tuning")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		logger:  logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat),
		printer: ui.New(),
	}

	if fromDB, _ := cmd.Flags().GetBool("from-db"); fromDB {
		if s.lib, err = s.loadFromStore(cmdContext(cmd)); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.lib = library.New(s.logger)
	if _, err := seed.Apply(s.lib, seed.Default()); err != nil {
		return nil, err
	}
	if cfg.SeedPath != "" {
		if err := applySeedPath(s.lib, cfg.SeedPath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *session) loadFromStore(ctx context.Context) (*library.Library, error) {
	if _, err := os.Stat(s.cfg.DBPath); err != nil {
		return nil, fmt.Errorf("graph store %s: %w (run `lazyscales seed import` first)", s.cfg.DBPath, err)
	}
	st, err := store.Open(ctx, s.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return store.LoadLibrary(ctx, st, s.logger)
}

// seedFiles expands path into the catalog files it names: the file itself,
// or every non-hidden .toml file in a directory, sorted by name.
func seedFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("seed path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("seed path: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".toml" {
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	sort.Strings(files)
	return files, nil
}

// applySeedPath applies every catalog file under path to lib.
func applySeedPath(lib *library.Library, path string) error {
	files, err := seedFiles(path)
	if err != nil {
		return err
	}
	for _, file := range files {
		f, err := seed.Load(file)
		if err != nil {
			return err
		}
		if _, err := seed.Apply(lib, f); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

// noteSet resolves a scale name and root spelling into a note set spelled
// per the session's accidental preference.
func (s *session) noteSet(scaleName, root string) (*noteset.NoteSet, error) {
	r, err := pitch.Parse(root)
	if err != nil {
		return nil, err
	}
	ns, err := s.lib.NoteSet(scaleName, r)
	if err != nil {
		return nil, err
	}
	if !s.cfg.Flat {
		ns.SetSharp()
	}
	return ns, nil
}

var errNoIntervals = errors.New("no intervals given")

// parseIntervals reads an interval sequence from args. Numbers are taken as
// semitone steps; note names are turned into the steps between consecutive
// notes, closing back to the first one.
func parseIntervals(args []string) ([]pitch.Interval, error) {
	if len(args) == 0 {
		return nil, errNoIntervals
	}
	if _, err := strconv.Atoi(args[0]); err == nil {
		out := make([]pitch.Interval, len(args))
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return nil, fmt.Errorf("interval %q: %w", a, err)
			}
			out[i] = pitch.Interval(n)
		}
		return out, nil
	}

	notes := make([]pitch.Class, len(args))
	for i, a := range args {
		p, err := pitch.Parse(a)
		if err != nil {
			return nil, err
		}
		notes[i] = p
	}
	out := make([]pitch.Interval, len(notes))
	for i, p := range notes {
		next := notes[(i+1)%len(notes)]
		step := pitch.Between(p, next)
		if step == 0 {
			step = pitch.Octave
		}
		out[i] = step
	}
	return out, nil
}
