// Package build provides the command that indexes the generated MIDI tree.
package build

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/cmd/emoji"
	"github.com/StreamMUSE/streammuse/internal/cmd/output"
	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// NewCommand creates the build command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Scan the content tree and write the catalog index",
		Long: `Build walks the content root, parses every MIDI filename, groups the
instances into comparison cards and writes the index atomically.

Files whose names or paths do not follow the naming convention are skipped
and reported; they never abort the build.`,
		Example: `  streammuse build
  streammuse build --content-root public/audio --index public/metadata/audio_catalog.json
  streammuse build --show-skipped -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			showSkipped, err := cmd.Flags().GetBool("show-skipped")
			if err != nil {
				return err
			}

			root, index := app.ContentRoot(), app.IndexPath()
			result, err := app.Builder().BuildIndex(cmd.Context(), root, index)
			if err != nil {
				return errors.WrapResource("build", "index", index, err)
			}

			format := output.DetectFormat(app.OutputFormat())
			w := cmd.OutOrStdout()
			if !format.IsTable() {
				return output.FormatAny(w, result, format)
			}

			fmt.Fprintf(w, "%s Wrote %d groups (%d instances from %d files) to %s\n",
				emoji.Success, len(result.Groups), result.Instances, result.Files, index)
			if n := len(result.Skipped); n > 0 {
				fmt.Fprintf(w, "%s Skipped %d files\n", emoji.Warning, n)
				if showSkipped {
					for _, s := range result.Skipped {
						fmt.Fprintf(w, "   %s: %s\n", s.Path, s.Reason)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("show-skipped", false, "list every skipped file with its reason")

	return cmd
}
