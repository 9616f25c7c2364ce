package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/reconcile"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

var dayShowDate string

var dayShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one day and its reconciliation state",
	Example: `
  # Show a day
  cmsrd day show --date 2026-03-02
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := validateDateFlag(dayShowDate)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(dayDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entry, found, err := store.GetDay(currentUserID(), date)
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("No entry for %s\n", date)
			return nil
		}

		fmt.Printf("Day %s\n", date)
		printShiftLine("Morning", entry.Morning)
		printShiftLine("Afternoon", entry.Afternoon)
		printShiftLine("Evening", entry.Evening)

		for _, allocation := range entry.ProjectAllocations {
			fmt.Printf("  %s  %.2fh\n", allocation.ProjectID, allocation.Hours)
		}

		summary := reconcile.Check(entry)
		fmt.Printf("Worked: %s, Allocated: %s, Delta: %+.2fh",
			timesheet.DecimalHoursToHHMM(summary.WorkedHours),
			timesheet.DecimalHoursToHHMM(summary.AllocatedHours),
			summary.Delta,
		)
		switch {
		case summary.Match:
			fmt.Println(" (reconciled)")
		case summary.OverAllocated:
			fmt.Println(" (over-allocated)")
		default:
			fmt.Println(" (under-allocated)")
		}
		return nil
	},
}

func printShiftLine(label string, shift timesheet.TimeShift) {
	if shift.Start == "" && shift.End == "" {
		return
	}
	fmt.Printf("  %-9s %s - %s\n", label, shift.Start, shift.End)
}

func init() {
	dayCmd.AddCommand(dayShowCmd)

	dayShowCmd.Flags().StringVar(&dayShowDate, "date", "", "Day to show, format YYYY-MM-DD")

	_ = dayShowCmd.MarkFlagRequired("date")
}
