// Package list provides the command that queries the catalog index offline.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/cmd/output"
	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/constants"
	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [group-id]",
		GroupID: "core",
		Short:   "List card groups from the catalog index",
		Long: `List applies the same filters and pagination as the audio API to the
local catalog index. With a group id, only that group is shown.`,
		Example: `  streammuse list                                  # First page of groups
  streammuse list --model xinyue_new --mode real_time # Filter by model and mode
  streammuse list --search prompt_007 -o json      # Search groups and filenames
  streammuse list xinyue_new-0.25b-pop909-offline-000-100t-002-200t`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := app.Catalog()
			groups := cat.Load(cmd.Context())
			if !cat.Loaded() {
				return errors.NewResourceError("load", "catalog", app.IndexPath(),
					fmt.Errorf("index could not be read; run \"streammuse build\" first"))
			}

			format := output.DetectFormat(app.OutputFormat())
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				for _, g := range groups {
					if g.GroupID == args[0] {
						return output.FormatGroups(w, []catalogs.CardGroup{g}, format)
					}
				}
				return errors.NewNotFoundError("group", args[0])
			}

			query, err := queryFromFlags(cmd)
			if err != nil {
				return err
			}
			page := catalogs.Apply(groups, query)

			if err := output.FormatGroups(w, page.Groups, format); err != nil {
				return err
			}
			if format.IsTable() {
				fmt.Fprintf(w, "\nShowing %d of %d groups (offset %d)\n", len(page.Groups), page.Total, page.Offset)
				if page.HasMore {
					fmt.Fprintf(w, "More results available with --offset %d\n", page.Offset+page.Limit)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("model", constants.AllValue, "Filter by model architecture")
	cmd.Flags().String("params", constants.AllValue, "Filter by model parameters (e.g. 0.25b)")
	cmd.Flags().String("dataset", constants.AllValue, "Filter by training dataset")
	cmd.Flags().String("mode", constants.AllValue, "Filter by inference mode")
	cmd.Flags().String("search", "", "Case-insensitive search over group ids and filenames")
	cmd.Flags().Int("limit", constants.DefaultPageSize, "Maximum groups to show")
	cmd.Flags().Int("offset", 0, "Groups to skip")

	return cmd
}

func queryFromFlags(cmd *cobra.Command) (catalogs.Query, error) {
	flags := cmd.Flags()
	q := catalogs.NewQuery()
	var err error
	if q.ModelArchitecture, err = flags.GetString("model"); err != nil {
		return q, err
	}
	if q.ModelParameters, err = flags.GetString("params"); err != nil {
		return q, err
	}
	if q.TrainingDataset, err = flags.GetString("dataset"); err != nil {
		return q, err
	}
	if q.InferenceMode, err = flags.GetString("mode"); err != nil {
		return q, err
	}
	if q.Search, err = flags.GetString("search"); err != nil {
		return q, err
	}
	if q.Limit, err = flags.GetInt("limit"); err != nil {
		return q, err
	}
	if q.Offset, err = flags.GetInt("offset"); err != nil {
		return q, err
	}
	return q, nil
}
