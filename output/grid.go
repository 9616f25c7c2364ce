// Package output assembles monthly report data into a spreadsheet grid
// (day columns, client and project rows) and writes it as CSV or Excel.
package output

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/report"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

const (
	RowClient  = "client"
	RowProject = "project"
)

// GridRow is one export row. Client rows carry only label, total, and
// percent; project rows additionally carry one cell per day.
type GridRow struct {
	Kind    string
	Label   string
	Cells   []string
	Total   string
	Percent float64
}

// ReportGrid is the fully formatted export for one month. All hour
// quantities are already rendered as "HH:mm".
type ReportGrid struct {
	Month    string
	Dates    []string
	Rows     []GridRow
	TotalRow GridRow
}

// BuildReportGrid renders one month of allocations into export rows:
// per client a header row, below it the client's projects alphabetically
// with per-day allocated hours, and a footer with per-day worked totals.
func BuildReportGrid(all timesheet.AllAllocations, projects []timesheet.Project, month string) (ReportGrid, error) {
	monthStart, err := report.ParseMonth(month)
	if err != nil {
		return ReportGrid{}, err
	}

	grid := ReportGrid{
		Month: month,
		Dates: monthDates(monthStart),
		Rows:  make([]GridRow, 0, 16),
	}

	monthly := report.Monthly(all, projects, month)
	dailyByProject := dailyProjectHours(all, month)

	for _, client := range monthly.ClientNames() {
		clientTotal := monthly.HoursByClient[client]
		grid.Rows = append(grid.Rows, GridRow{
			Kind:    RowClient,
			Label:   client,
			Total:   timesheet.DecimalHoursToHHMM(clientTotal),
			Percent: percentOf(clientTotal, monthly.TotalWorkedHours),
		})

		for _, project := range monthly.ProjectsForClient(client) {
			cells := make([]string, len(grid.Dates))
			for i, date := range grid.Dates {
				if hours := dailyByProject[project.ProjectID][date]; hours > 0 {
					cells[i] = timesheet.DecimalHoursToHHMM(hours)
				}
			}
			grid.Rows = append(grid.Rows, GridRow{
				Kind:    RowProject,
				Label:   project.Name,
				Cells:   cells,
				Total:   timesheet.DecimalHoursToHHMM(project.Hours),
				Percent: project.Percent,
			})
		}
	}

	workedCells := make([]string, len(grid.Dates))
	for i, date := range grid.Dates {
		if entry, ok := all[date]; ok {
			if worked := timesheet.WorkedHours(entry); worked > 0 {
				workedCells[i] = timesheet.DecimalHoursToHHMM(worked)
			}
		}
	}
	grid.TotalRow = GridRow{
		Kind:    RowProject,
		Label:   "Worked",
		Cells:   workedCells,
		Total:   timesheet.DecimalHoursToHHMM(monthly.TotalWorkedHours),
		Percent: percentOf(monthly.TotalWorkedHours, monthly.TotalWorkedHours),
	}

	return grid, nil
}

// FormatPercent renders an export percentage without trailing zeros, so
// an empty month reads "0%" rather than "0.00%" or worse.
func FormatPercent(percent float64) string {
	if math.IsNaN(percent) {
		return "0%"
	}
	rendered := fmt.Sprintf("%.2f", percent)
	rendered = strings.TrimRight(rendered, "0")
	rendered = strings.TrimRight(rendered, ".")
	return rendered + "%"
}

func monthDates(monthStart time.Time) []string {
	daysInMonth := time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	dates := make([]string, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		dates = append(dates, time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}
	return dates
}

func dailyProjectHours(all timesheet.AllAllocations, month string) map[string]map[string]float64 {
	prefix := month + "-"
	out := make(map[string]map[string]float64)
	for date, entry := range all {
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		for _, allocation := range entry.ProjectAllocations {
			byDate, ok := out[allocation.ProjectID]
			if !ok {
				byDate = make(map[string]float64)
				out[allocation.ProjectID] = byDate
			}
			byDate[date] += allocation.Hours
		}
	}
	return out
}

func percentOf(hours, grandTotal float64) float64 {
	if grandTotal == 0 {
		return 0
	}
	return hours / grandTotal * 100
}
