package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/syncer"
)

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the local cache with the backend state",
	Example: `
  # Pull all days and projects from the backend
  cmsrd sync pull
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, userID, err := requireRemoteClient()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(syncDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := syncer.Pull(cmd.Context(), client, store, userID)
		if err != nil {
			return err
		}

		fmt.Printf("Pull completed. Days: %d, Projects: %d\n", result.Days, result.Projects)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncPullCmd)
}
