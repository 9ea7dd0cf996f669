// Package docs provides the command that renders the catalog as markdown.
package docs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/cmd/emoji"
	"github.com/StreamMUSE/streammuse/internal/tools/docs"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/rankings"
)

// NewCommand creates the docs command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		GroupID: "inspect",
		Short:   "Generate markdown documentation for the catalog",
		Long: `Docs renders the catalog index and the model leaderboard as Hugo-ready
markdown pages: an overview, one page per model architecture and the
rankings table.`,
		Example: `  streammuse docs --output ./site/content`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputDir, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}

			cat := app.Catalog()
			groups := cat.Load(cmd.Context())
			if !cat.Loaded() {
				return errors.NewResourceError("load", "catalog", app.IndexPath(),
					fmt.Errorf("index could not be read; run \"streammuse build\" first"))
			}

			gen := docs.New(docs.WithOutputDir(outputDir), docs.WithLogger(app.Logger()))
			written, err := gen.Generate(cmd.Context(), groups, rankings.All())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Generated %d pages in %s\n", emoji.Success, len(written), outputDir)
			return nil
		},
	}

	cmd.Flags().String("output", "./docs", "Output directory")

	return cmd
}
