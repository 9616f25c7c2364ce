package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/reconcile"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var (
	dayDistributeDate     string
	dayDistributeProjects []string
)

var dayDistributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Spread worked hours evenly across projects",
	Long: `Replace the day's allocations with an even split of its worked hours over
the given projects. The day must already have worked shifts recorded.`,
	Example: `
  # 8 worked hours over two projects -> 4h each
  cmsrd day distribute --date 2026-03-02 --project p-1a2b3c --project p-9f8e7d
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := validateDateFlag(dayDistributeDate)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(dayDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		userID := currentUserID()
		entry, _, err := store.GetDay(userID, date)
		if err != nil {
			return err
		}

		distributed, err := reconcile.Distribute(entry, dayDistributeProjects)
		if err != nil {
			return err
		}

		if err := store.PutDay(userID, date, distributed); err != nil {
			return err
		}

		printDaySummary(date, reconcile.Check(distributed))
		return nil
	},
}

func init() {
	dayCmd.AddCommand(dayDistributeCmd)

	dayDistributeCmd.Flags().StringVar(&dayDistributeDate, "date", "", "Day to distribute, format YYYY-MM-DD")
	dayDistributeCmd.Flags().StringArrayVar(&dayDistributeProjects, "project", nil, "Project ID to include (repeatable)")

	_ = dayDistributeCmd.MarkFlagRequired("date")
	_ = dayDistributeCmd.MarkFlagRequired("project")
}
