package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
)

var (
	dayCopyDate    string
	dayCopyTargets []string
)

var dayCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Replicate one day onto other dates",
	Long: `Copy a day's shifts and allocations onto other dates in a single
transaction. Existing entries on the target dates are replaced. The source
day itself is never a valid target.`,
	Example: `
  # Fill a week from Monday
  cmsrd day copy --date 2026-03-02 --to 2026-03-03 --to 2026-03-04 --to 2026-03-05 --to 2026-03-06
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := validateDateFlag(dayCopyDate)
		if err != nil {
			return err
		}
		targets := make([]string, 0, len(dayCopyTargets))
		for _, target := range dayCopyTargets {
			validated, err := validateDateFlag(target)
			if err != nil {
				return fmt.Errorf("invalid --to value: %w", err)
			}
			if validated == date {
				continue
			}
			targets = append(targets, validated)
		}
		if len(targets) == 0 {
			return fmt.Errorf("no target dates to copy to")
		}

		store, err := storage.OpenSQLite(dayDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		userID := currentUserID()
		entry, found, err := store.GetDay(userID, date)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no entry for %s", date)
		}

		written, err := store.ReplicateDay(userID, entry, targets)
		if err != nil {
			return err
		}

		fmt.Printf("Day %s copied to %d date(s).\n", date, written)
		return nil
	},
}

func init() {
	dayCmd.AddCommand(dayCopyCmd)

	dayCopyCmd.Flags().StringVar(&dayCopyDate, "date", "", "Source day, format YYYY-MM-DD")
	dayCopyCmd.Flags().StringArrayVar(&dayCopyTargets, "to", nil, "Target date (repeatable)")

	_ = dayCopyCmd.MarkFlagRequired("date")
	_ = dayCopyCmd.MarkFlagRequired("to")
}
