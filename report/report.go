// Package report rolls per-day entries up into monthly totals broken
// out by project and client.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// DayTotal carries one day's worked and allocated totals.
type DayTotal struct {
	Date           string  `json:"date"`
	WorkedHours    float64 `json:"workedHours"`
	AllocatedHours float64 `json:"allocatedHours"`
}

// ProjectTotal carries one project's allocated total for the month and
// its share of the grand worked total.
type ProjectTotal struct {
	ProjectID string  `json:"projectId"`
	Name      string  `json:"name"`
	Client    string  `json:"client"`
	Hours     float64 `json:"hours"`
	Percent   float64 `json:"percent"`
}

// MonthlyReport is the derived aggregate for one calendar month. It is
// computed on demand and never persisted.
//
// TotalWorkedHours and TotalAllocatedHours can legitimately diverge at
// monthly granularity: reconciliation is enforced per day at save time
// and never recomputed retroactively.
type MonthlyReport struct {
	Month               string             `json:"month"`
	TotalWorkedHours    float64            `json:"totalWorkedHours"`
	TotalAllocatedHours float64            `json:"totalAllocatedHours"`
	HoursByClient       map[string]float64 `json:"hoursByClient"`
	Days                []DayTotal         `json:"days"`
	Projects            []ProjectTotal     `json:"projects"`
}

// ParseMonth validates a "YYYY-MM" label and returns the first day of
// that month.
func ParseMonth(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", value)
	}
	return parsed, nil
}

// Monthly scans all days falling in the given "YYYY-MM" month and
// aggregates worked, allocated, per-project, and per-client totals.
//
// Allocations whose project no longer exists still count toward the
// allocated grand total but are excluded from per-project and
// per-client breakdowns, which need project resolution.
func Monthly(all timesheet.AllAllocations, projects []timesheet.Project, month string) MonthlyReport {
	result := MonthlyReport{
		Month:         month,
		HoursByClient: make(map[string]float64),
		Days:          make([]DayTotal, 0),
		Projects:      make([]ProjectTotal, 0),
	}

	projectsByID := make(map[string]timesheet.Project, len(projects))
	for _, project := range projects {
		projectsByID[project.ID] = project
	}

	prefix := month + "-"
	hoursByProject := make(map[string]float64)

	for date, entry := range all {
		if !strings.HasPrefix(date, prefix) {
			continue
		}

		worked := timesheet.WorkedHours(entry)
		allocated := entry.AllocatedHours()
		result.TotalWorkedHours += worked
		result.TotalAllocatedHours += allocated
		result.Days = append(result.Days, DayTotal{
			Date:           date,
			WorkedHours:    worked,
			AllocatedHours: allocated,
		})

		for _, allocation := range entry.ProjectAllocations {
			project, ok := projectsByID[allocation.ProjectID]
			if !ok {
				continue
			}
			hoursByProject[allocation.ProjectID] += allocation.Hours
			result.HoursByClient[project.Client] += allocation.Hours
		}
	}

	sort.Slice(result.Days, func(i, j int) bool {
		return result.Days[i].Date < result.Days[j].Date
	})

	for projectID, hours := range hoursByProject {
		project := projectsByID[projectID]
		result.Projects = append(result.Projects, ProjectTotal{
			ProjectID: projectID,
			Name:      project.Name,
			Client:    project.Client,
			Hours:     hours,
			Percent:   percentOf(hours, result.TotalWorkedHours),
		})
	}
	sort.Slice(result.Projects, func(i, j int) bool {
		if result.Projects[i].Client != result.Projects[j].Client {
			return result.Projects[i].Client < result.Projects[j].Client
		}
		return result.Projects[i].Name < result.Projects[j].Name
	})

	return result
}

// ClientNames returns the clients with hours this month, alphabetically.
func (r MonthlyReport) ClientNames() []string {
	names := make([]string, 0, len(r.HoursByClient))
	for name := range r.HoursByClient {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProjectsForClient returns the month's project totals for one client,
// alphabetically by project name. This is the export row order.
func (r MonthlyReport) ProjectsForClient(client string) []ProjectTotal {
	out := make([]ProjectTotal, 0)
	for _, project := range r.Projects {
		if project.Client == client {
			out = append(out, project)
		}
	}
	return out
}

// RankedProjects returns the month's project totals by descending hours,
// ties broken by name. This is the in-app report ranking.
func (r MonthlyReport) RankedProjects() []ProjectTotal {
	ranked := append([]ProjectTotal(nil), r.Projects...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Hours != ranked[j].Hours {
			return ranked[i].Hours > ranked[j].Hours
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// percentOf guards the export percentage against an empty month.
func percentOf(hours, grandTotal float64) float64 {
	if grandTotal == 0 {
		return 0
	}
	return hours / grandTotal * 100
}
