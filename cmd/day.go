package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

var dayDBPath string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Record and inspect daily shifts and project allocations.",
	Long: `Manage one timesheet day: its morning/afternoon/evening shifts and the
hours allocated to each project.

A day only saves cleanly when allocated hours reconcile with worked hours
within 0.01h; use --force to save an unbalanced day anyway.`,
	Example: `
  # Record a day
  cmsrd day set --date 2026-03-02 --morning 08:00-12:00 --afternoon 13:00-17:00 --alloc p-1a2b3c=4 --alloc p-9f8e7d=4

  # Inspect reconciliation state
  cmsrd day show --date 2026-03-02

  # Distribute worked hours evenly
  cmsrd day distribute --date 2026-03-02 --project p-1a2b3c --project p-9f8e7d

  # Replicate one day onto other dates
  cmsrd day copy --date 2026-03-02 --to 2026-03-03 --to 2026-03-04

  # Remove a day
  cmsrd day delete --date 2026-03-02
`,
}

func init() {
	rootCmd.AddCommand(dayCmd)

	dayCmd.PersistentFlags().StringVar(&dayDBPath, "db", "./cmsrd.db", "Path to local SQLite database")
}

func validateDateFlag(date string) (string, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// parseShiftFlag parses "08:00-12:00" into a shift. An empty value
// yields an empty shift.
func parseShiftFlag(value string) (timesheet.TimeShift, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return timesheet.TimeShift{}, nil
	}

	start, end, found := strings.Cut(value, "-")
	if !found {
		return timesheet.TimeShift{}, fmt.Errorf("invalid shift %q (expected HH:mm-HH:mm)", value)
	}
	return timesheet.TimeShift{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}, nil
}

// parseAllocFlags parses repeated "projectID=hours" values.
func parseAllocFlags(values []string) ([]timesheet.ProjectTimeAllocation, error) {
	allocations := make([]timesheet.ProjectTimeAllocation, 0, len(values))
	for _, value := range values {
		projectID, raw, found := strings.Cut(value, "=")
		if !found {
			return nil, fmt.Errorf("invalid allocation %q (expected projectID=hours)", value)
		}
		hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours in allocation %q: %w", value, err)
		}
		if hours < 0 {
			return nil, fmt.Errorf("invalid allocation %q: hours must not be negative", value)
		}
		allocations = append(allocations, timesheet.ProjectTimeAllocation{
			ProjectID: strings.TrimSpace(projectID),
			Hours:     hours,
		})
	}
	return allocations, nil
}
