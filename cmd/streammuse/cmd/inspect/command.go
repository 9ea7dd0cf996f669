// Package inspect provides the command that decodes a MIDI file.
package inspect

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/cmd/output"
	"github.com/StreamMUSE/streammuse/pkg/midi"
)

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect <file.mid>",
		GroupID: "inspect",
		Short:   "Decode a MIDI file into tracks and notes",
		Long: `Inspect decodes a MIDI file the same way the MIDI view endpoint does and
prints a per-track summary. With --from/--to, the notes sounding inside
the window are printed instead.`,
		Example: `  streammuse inspect public/audio/xinyue_new/0.25b/pop909/offline/x.mid
  streammuse inspect x.mid --from 2 --to 4 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks, err := midi.DecodeFile(args[0])
			if err != nil {
				return err
			}
			app.Logger().Debug().Str("file", args[0]).Int("tracks", len(tracks)).Msg("Decoded MIDI file")

			format := output.DetectFormat(app.OutputFormat())
			w := cmd.OutOrStdout()
			info := midi.Summarize(tracks)

			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				from, _ := cmd.Flags().GetFloat64("from")
				to, _ := cmd.Flags().GetFloat64("to")
				if !cmd.Flags().Changed("to") {
					to = info.Duration
				}
				if to < from {
					return fmt.Errorf("--to (%g) is before --from (%g)", to, from)
				}
				return output.FormatAny(w, midi.NotesInRange(tracks, from, to), format)
			}

			if err := output.FormatTracks(w, tracks, info, format); err != nil {
				return err
			}
			if format.IsTable() {
				fmt.Fprintf(w, "\n%d tracks, %d notes, %.2fs\n", info.TrackCount, info.NoteCount, info.Duration)
			}
			return nil
		},
	}

	cmd.Flags().Float64("from", 0, "Window start in seconds")
	cmd.Flags().Float64("to", 0, "Window end in seconds (default end of file)")

	return cmd
}
