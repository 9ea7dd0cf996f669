// Package rankings provides the command that prints the model leaderboard.
package rankings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/cmd/output"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/rankings"
)

// NewCommand creates the rankings command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "rankings [id]",
		GroupID: "inspect",
		Short:   "Show the model leaderboard",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := rankings.All()
			if len(args) == 1 {
				e, ok := rankings.Find(args[0])
				if !ok {
					return errors.NewNotFoundError("ranking", args[0])
				}
				entries = []rankings.Entry{e}
			}

			format := output.DetectFormat(app.OutputFormat())
			w := cmd.OutOrStdout()
			if err := output.FormatRankings(w, entries, format); err != nil {
				return err
			}
			if format.IsTable() && len(args) == 0 {
				fmt.Fprintf(w, "\n%d models, %d votes\n", len(entries), rankings.TotalVotes(entries))
			}
			return nil
		},
	}
}
