package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/lazyscales/internal/config"
	"github.com/papapumpkin/lazyscales/internal/fretboard"
	"github.com/papapumpkin/lazyscales/internal/midiexport"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scales to other formats",
}

var exportMIDICmd = &cobra.Command{
	Use:   "midi",
	Short: "Write a scale as a Standard MIDI File",
	Long: `Midi writes the scale as ascending eighth notes from the root. With
--fretboard it instead plays every selected fret of the rendered board, string
by string from the lowest.`,
	Example: `  lazyscales export midi --scale Dorian --root D --out dorian.mid
  lazyscales export midi --scale "Major Pentatonic" --root G --fretboard --frets 12 --out g.mid`,
	Args: cobra.NoArgs,
	RunE: runExportMIDI,
}

func init() {
	exportMIDICmd.Flags().String("scale", "", "scale name (required)")
	exportMIDICmd.Flags().String("root", "C", "root note")
	exportMIDICmd.Flags().Int("octave", 4, "octave of the root (C4 = middle C); with --fretboard, of the lowest open string, default 2")
	exportMIDICmd.Flags().StringP("out", "o", "", "output .mid file (required)")
	exportMIDICmd.Flags().Bool("fretboard", false, "play the fretboard positions instead of one octave")
	exportMIDICmd.Flags().String("tuning", "", "tuning name for --fretboard (default from config)")
	exportMIDICmd.Flags().Int("frets", fretboard.DefaultFrets, "frets to include with --fretboard")
	_ = exportMIDICmd.MarkFlagRequired("scale")
	_ = exportMIDICmd.MarkFlagRequired("out")

	exportCmd.AddCommand(exportMIDICmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportMIDI(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	scaleName, _ := cmd.Flags().GetString("scale")
	root, _ := cmd.Flags().GetString("root")
	octave, _ := cmd.Flags().GetInt("octave")
	out, _ := cmd.Flags().GetString("out")
	board, _ := cmd.Flags().GetBool("fretboard")

	if board && !cmd.Flags().Changed("octave") {
		octave = 2
	}

	ns, err := s.noteSet(scaleName, root)
	if err != nil {
		return err
	}
	opts := midiOptions(s.cfg.MIDI)

	var buf bytes.Buffer
	if board {
		t, err := s.lib.Tuning(s.cfg.Tuning)
		if err != nil {
			return err
		}
		g, err := fretboard.Render(t, ns, nil, s.cfg.Frets)
		if err != nil {
			return err
		}
		open, err := midiexport.OpenStrings(t, octave)
		if err != nil {
			return err
		}
		if err := midiexport.WriteFretboard(&buf, g, open, opts); err != nil {
			return err
		}
	} else if err := midiexport.WriteScale(&buf, ns, octave, opts); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	s.logger.Debug("wrote midi", "file", out, "scale", scaleName, "root", root, "fretboard", board)
	s.printer.Success(fmt.Sprintf("wrote %s (%s)", out, ns))
	return nil
}

// midiOptions converts validated config into writer options.
func midiOptions(c config.MIDIConfig) midiexport.Options {
	return midiexport.Options{
		Channel:  uint8(c.Channel),
		Velocity: uint8(c.Velocity),
		BPM:      float64(c.BPM),
	}
}
