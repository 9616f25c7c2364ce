package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/reconcile"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

var (
	daySetDate      string
	daySetMorning   string
	daySetAfternoon string
	daySetEvening   string
	daySetAllocs    []string
	daySetForce     bool
)

var daySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record shifts and allocations for one day",
	Long: `Write the full entry for one day, replacing whatever was stored before.

The entry is rejected when allocated hours do not reconcile with the worked
hours derived from the shifts, unless --force is given. A shift whose end is
not after its start counts as zero worked time.`,
	Example: `
  # Balanced full day
  cmsrd day set --date 2026-03-02 --morning 08:00-12:00 --afternoon 13:00-17:00 --alloc p-1a2b3c=4 --alloc p-9f8e7d=4

  # Save an unbalanced draft anyway
  cmsrd day set --date 2026-03-02 --morning 08:00-12:00 --alloc p-1a2b3c=1 --force
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := validateDateFlag(daySetDate)
		if err != nil {
			return err
		}

		morning, err := parseShiftFlag(daySetMorning)
		if err != nil {
			return fmt.Errorf("invalid --morning value: %w", err)
		}
		afternoon, err := parseShiftFlag(daySetAfternoon)
		if err != nil {
			return fmt.Errorf("invalid --afternoon value: %w", err)
		}
		evening, err := parseShiftFlag(daySetEvening)
		if err != nil {
			return fmt.Errorf("invalid --evening value: %w", err)
		}
		allocations, err := parseAllocFlags(daySetAllocs)
		if err != nil {
			return err
		}

		entry := timesheet.DailyEntry{
			Morning:            morning,
			Afternoon:          afternoon,
			Evening:            evening,
			ProjectAllocations: allocations,
		}

		summary := reconcile.Check(entry)
		if !summary.Match && !daySetForce {
			return fmt.Errorf("day does not reconcile: worked %s, allocated %s (delta %+.2fh); use --force to save anyway",
				timesheet.DecimalHoursToHHMM(summary.WorkedHours),
				timesheet.DecimalHoursToHHMM(summary.AllocatedHours),
				summary.Delta,
			)
		}

		store, err := storage.OpenSQLite(dayDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.PutDay(currentUserID(), date, entry); err != nil {
			return err
		}

		printDaySummary(date, summary)
		return nil
	},
}

func printDaySummary(date string, summary reconcile.Summary) {
	fmt.Printf("Day %s saved. Worked: %s, Allocated: %s", date,
		timesheet.DecimalHoursToHHMM(summary.WorkedHours),
		timesheet.DecimalHoursToHHMM(summary.AllocatedHours),
	)
	switch {
	case summary.Match:
		fmt.Println(", reconciled.")
	case summary.OverAllocated:
		fmt.Printf(", over-allocated by %.2fh.\n", summary.AllocatedHours-summary.WorkedHours)
	default:
		fmt.Printf(", under-allocated by %.2fh.\n", summary.WorkedHours-summary.AllocatedHours)
	}
}

func init() {
	dayCmd.AddCommand(daySetCmd)

	daySetCmd.Flags().StringVar(&daySetDate, "date", "", "Day to record, format YYYY-MM-DD")
	daySetCmd.Flags().StringVar(&daySetMorning, "morning", "", "Morning shift, format HH:mm-HH:mm")
	daySetCmd.Flags().StringVar(&daySetAfternoon, "afternoon", "", "Afternoon shift, format HH:mm-HH:mm")
	daySetCmd.Flags().StringVar(&daySetEvening, "evening", "", "Evening shift, format HH:mm-HH:mm")
	daySetCmd.Flags().StringArrayVar(&daySetAllocs, "alloc", nil, "Project allocation projectID=hours (repeatable)")
	daySetCmd.Flags().BoolVar(&daySetForce, "force", false, "Save even when allocations do not reconcile with worked hours")

	_ = daySetCmd.MarkFlagRequired("date")
}
