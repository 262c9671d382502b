// Package cli holds the conferenced commands.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the conferenced binary.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conferenced",
		Short: "Conference Central API server",
		Long: `Conference Central lets organizers publish conferences and sessions,
and attendees register for seats and keep a wishlist of sessions.

Configuration is read from the environment (and a .env file outside production).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewAnnounceCommand())

	return cmd
}
