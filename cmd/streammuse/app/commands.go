package app

import (
	"github.com/spf13/cobra"

	"github.com/StreamMUSE/streammuse/cmd/streammuse/cmd/build"
	"github.com/StreamMUSE/streammuse/cmd/streammuse/cmd/docs"
	"github.com/StreamMUSE/streammuse/cmd/streammuse/cmd/inspect"
	"github.com/StreamMUSE/streammuse/cmd/streammuse/cmd/list"
	"github.com/StreamMUSE/streammuse/cmd/streammuse/cmd/rankings"
	"github.com/StreamMUSE/streammuse/cmd/streammuse/cmd/serve"
	"github.com/StreamMUSE/streammuse/cmd/streammuse/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))

	// Inspection commands
	rootCmd.AddCommand(inspect.NewCommand(a))
	rootCmd.AddCommand(rankings.NewCommand(a))
	rootCmd.AddCommand(docs.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
