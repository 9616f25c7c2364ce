package report

import (
	"testing"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

func testProjects() []timesheet.Project {
	return []timesheet.Project{
		{ID: "p-x", Name: "Platform X", Client: "Acme", Active: true},
		{ID: "p-y", Name: "Migration Y", Client: "Acme", Active: true},
		{ID: "p-z", Name: "Support Z", Client: "Globex", Active: false},
	}
}

func testAllocations() timesheet.AllAllocations {
	return timesheet.AllAllocations{
		"2026-03-02": {
			Morning:   timesheet.TimeShift{Start: "08:00", End: "12:00"},
			Afternoon: timesheet.TimeShift{Start: "13:00", End: "17:00"},
			ProjectAllocations: []timesheet.ProjectTimeAllocation{
				{ProjectID: "p-x", Hours: 5},
				{ProjectID: "p-z", Hours: 3},
			},
		},
		"2026-03-03": {
			Morning: timesheet.TimeShift{Start: "09:00", End: "12:00"},
			ProjectAllocations: []timesheet.ProjectTimeAllocation{
				{ProjectID: "p-y", Hours: 1},
				{ProjectID: "p-orphan", Hours: 2},
			},
		},
		// Outside the reporting month.
		"2026-04-01": {
			ProjectAllocations: []timesheet.ProjectTimeAllocation{
				{ProjectID: "p-x", Hours: 8},
			},
		},
	}
}

func TestMonthly_Totals(t *testing.T) {
	t.Parallel()

	monthly := Monthly(testAllocations(), testProjects(), "2026-03")

	if monthly.TotalWorkedHours != 11.0 {
		t.Fatalf("TotalWorkedHours = %v, want 11.0", monthly.TotalWorkedHours)
	}
	// Orphaned allocations still count toward the allocated grand total.
	if monthly.TotalAllocatedHours != 11.0 {
		t.Fatalf("TotalAllocatedHours = %v, want 11.0", monthly.TotalAllocatedHours)
	}

	if len(monthly.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(monthly.Days))
	}
	if monthly.Days[0].Date != "2026-03-02" || monthly.Days[1].Date != "2026-03-03" {
		t.Fatalf("days out of order: %+v", monthly.Days)
	}
}

func TestMonthly_ClientBreakdownSkipsOrphans(t *testing.T) {
	t.Parallel()

	monthly := Monthly(testAllocations(), testProjects(), "2026-03")

	if got := monthly.HoursByClient["Acme"]; got != 6.0 {
		t.Fatalf("Acme hours = %v, want 6.0", got)
	}
	if got := monthly.HoursByClient["Globex"]; got != 3.0 {
		t.Fatalf("Globex hours = %v, want 3.0", got)
	}
	if len(monthly.HoursByClient) != 2 {
		t.Fatalf("HoursByClient = %v, want exactly two clients", monthly.HoursByClient)
	}

	// The orphaned project never shows up in per-project totals either.
	for _, project := range monthly.Projects {
		if project.ProjectID == "p-orphan" {
			t.Fatal("orphaned allocation must not appear in project breakdown")
		}
	}
}

func TestMonthly_ProjectOrderAndPercent(t *testing.T) {
	t.Parallel()

	monthly := Monthly(testAllocations(), testProjects(), "2026-03")

	if len(monthly.Projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(monthly.Projects))
	}

	// Client then name.
	if monthly.Projects[0].Name != "Migration Y" || monthly.Projects[1].Name != "Platform X" || monthly.Projects[2].Name != "Support Z" {
		t.Fatalf("unexpected order: %q, %q, %q", monthly.Projects[0].Name, monthly.Projects[1].Name, monthly.Projects[2].Name)
	}

	for _, project := range monthly.Projects {
		want := project.Hours / 11.0 * 100
		if project.Percent != want {
			t.Fatalf("%s percent = %v, want %v", project.Name, project.Percent, want)
		}
	}
}

func TestMonthly_EmptyMonth(t *testing.T) {
	t.Parallel()

	monthly := Monthly(testAllocations(), testProjects(), "2026-05")

	if monthly.TotalWorkedHours != 0 || monthly.TotalAllocatedHours != 0 {
		t.Fatalf("empty month totals: %v / %v", monthly.TotalWorkedHours, monthly.TotalAllocatedHours)
	}
	if len(monthly.Days) != 0 || len(monthly.Projects) != 0 {
		t.Fatalf("empty month carries data: %+v", monthly)
	}
	for _, project := range monthly.Projects {
		if project.Percent != 0 {
			t.Fatal("percent with a zero grand total must be zero")
		}
	}
}

func TestMonthlyReport_Views(t *testing.T) {
	t.Parallel()

	monthly := Monthly(testAllocations(), testProjects(), "2026-03")

	clients := monthly.ClientNames()
	if len(clients) != 2 || clients[0] != "Acme" || clients[1] != "Globex" {
		t.Fatalf("ClientNames = %v", clients)
	}

	acme := monthly.ProjectsForClient("Acme")
	if len(acme) != 2 || acme[0].Name != "Migration Y" || acme[1].Name != "Platform X" {
		t.Fatalf("ProjectsForClient(Acme) = %+v", acme)
	}

	ranked := monthly.RankedProjects()
	if ranked[0].ProjectID != "p-x" || ranked[1].ProjectID != "p-z" || ranked[2].ProjectID != "p-y" {
		t.Fatalf("RankedProjects order: %q, %q, %q", ranked[0].ProjectID, ranked[1].ProjectID, ranked[2].ProjectID)
	}
}

func TestParseMonth(t *testing.T) {
	t.Parallel()

	if _, err := ParseMonth("2026-03"); err != nil {
		t.Fatalf("valid month rejected: %v", err)
	}
	for _, bad := range []string{"2026-3", "2026/03", "March 2026", ""} {
		if _, err := ParseMonth(bad); err == nil {
			t.Fatalf("ParseMonth(%q): expected error", bad)
		}
	}
}
