package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"conferencecentral/internal/cache"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
)

// NewAnnounceCommand creates the announce command.
func NewAnnounceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "announce",
		Short: "Print the nearly sold out announcement without publishing it",
		Long: `Scan conferences with between one and five seats left and print the
announcement a running server would publish on its next recompute. This is
a dry run: the server keeps its announcement in memory and is not updated.
Prints nothing when no conference qualifies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cmd.Context(), cfg.DBUrl)
			if err != nil {
				return err
			}
			defer db.Close()

			facts := services.NewDerivedFactService(
				postgres.NewConferenceRepository(db),
				postgres.NewSessionRepository(db),
				cache.NewMemory(0),
			)
			text, err := facts.RecomputeAnnouncement(cmd.Context())
			if err != nil {
				return fmt.Errorf("recompute announcement: %w", err)
			}
			if text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}
}
