package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/syncer"
)

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload all local days to the backend",
	Long: `Upload every locally stored day to the backend, one request per day. Days
that fail to upload are reported; the rest still go through.`,
	Example: `
  # Push all local days
  cmsrd sync push
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

		all, err := store.AllAllocations(userID)
		if err != nil {
			return err
		}

		result := syncer.Push(cmd.Context(), client, userID, all)
		fmt.Printf("Push completed. Days pushed: %d, Failed: %d\n", result.DaysPushed, len(result.Failures))
		for _, failure := range result.Failures {
			fmt.Printf("  %s: %v\n", failure.Date, failure.Err)
		}
		if len(result.Failures) > 0 {
			return fmt.Errorf("%d day(s) failed to push", len(result.Failures))
		}
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncPushCmd)
}
