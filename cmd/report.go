package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/output"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/report"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/storage"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

var (
	reportMonth  string
	reportDBPath string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the monthly per-project and per-client summary",
	Long: `Aggregate one month of allocations: total worked and allocated hours,
hours per client, and hours plus share per project.`,
	Example: `
  # March 2026 summary
  cmsrd report --month 2026-03
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := report.ParseMonth(reportMonth); err != nil {
			return err
		}

		store, err := storage.OpenSQLite(reportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		all, err := store.AllAllocations(currentUserID())
		if err != nil {
			return err
		}
		projects, err := store.ListProjects()
		if err != nil {
			return err
		}

		monthly := report.Monthly(all, projects, reportMonth)

		fmt.Printf("Month %s\n", monthly.Month)
		fmt.Printf("Worked:    %s (%.2fh)\n", timesheet.DecimalHoursToHHMM(monthly.TotalWorkedHours), monthly.TotalWorkedHours)
		fmt.Printf("Allocated: %s (%.2fh)\n", timesheet.DecimalHoursToHHMM(monthly.TotalAllocatedHours), monthly.TotalAllocatedHours)

		for _, client := range monthly.ClientNames() {
			fmt.Printf("\n%s  %.2fh\n", client, monthly.HoursByClient[client])
			for _, project := range monthly.ProjectsForClient(client) {
				fmt.Printf("  %-40s %8.2fh  %s\n", project.Name, project.Hours, output.FormatPercent(project.Percent))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Month to report, format YYYY-MM")
	reportCmd.Flags().StringVar(&reportDBPath, "db", "./cmsrd.db", "Path to local SQLite database")

	_ = reportCmd.MarkFlagRequired("month")
}
