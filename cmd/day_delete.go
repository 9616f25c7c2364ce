package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var dayDeleteDate string

var dayDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one day and its allocations",
	Example: `
  # Delete a day
  cmsrd day delete --date 2026-03-02
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := validateDateFlag(dayDeleteDate)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(dayDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.DeleteDay(currentUserID(), date)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("no entry for %s", date)
		}

		fmt.Printf("Day %s deleted.\n", date)
		return nil
	},
}

func init() {
	dayCmd.AddCommand(dayDeleteCmd)

	dayDeleteCmd.Flags().StringVar(&dayDeleteDate, "date", "", "Day to delete, format YYYY-MM-DD")

	_ = dayDeleteCmd.MarkFlagRequired("date")
}
