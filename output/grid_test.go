package output

import (
	"math"
	"testing"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

func gridProjects() []timesheet.Project {
	return []timesheet.Project{
		{ID: "p-x", Name: "Platform X", Client: "Acme", Active: true},
		{ID: "p-y", Name: "Migration Y", Client: "Acme", Active: true},
		{ID: "p-z", Name: "Support Z", Client: "Globex", Active: true},
	}
}

func gridAllocations() timesheet.AllAllocations {
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
				{ProjectID: "p-y", Hours: 3},
			},
		},
	}
}

func TestBuildReportGrid_Shape(t *testing.T) {
	t.Parallel()

	grid, err := BuildReportGrid(gridAllocations(), gridProjects(), "2026-03")
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	if grid.Month != "2026-03" {
		t.Fatalf("month = %q", grid.Month)
	}
	if len(grid.Dates) != 31 {
		t.Fatalf("march has 31 days, got %d columns", len(grid.Dates))
	}
	if grid.Dates[0] != "2026-03-01" || grid.Dates[30] != "2026-03-31" {
		t.Fatalf("date range %q..%q", grid.Dates[0], grid.Dates[30])
	}

	// Two client header rows plus three project rows.
	if len(grid.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(grid.Rows))
	}

	wantKinds := []string{RowClient, RowProject, RowProject, RowClient, RowProject}
	wantLabels := []string{"Acme", "Migration Y", "Platform X", "Globex", "Support Z"}
	for i, row := range grid.Rows {
		if row.Kind != wantKinds[i] || row.Label != wantLabels[i] {
			t.Fatalf("row %d = %s/%q, want %s/%q", i, row.Kind, row.Label, wantKinds[i], wantLabels[i])
		}
	}
}

func TestBuildReportGrid_CellsAndTotals(t *testing.T) {
	t.Parallel()

	grid, err := BuildReportGrid(gridAllocations(), gridProjects(), "2026-03")
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	acme := grid.Rows[0]
	if acme.Total != "08:00" {
		t.Fatalf("Acme total = %q, want 08:00", acme.Total)
	}
	if len(acme.Cells) != 0 {
		t.Fatalf("client rows carry no day cells, got %v", acme.Cells)
	}

	platformX := grid.Rows[2]
	// March 2nd is column index 1.
	if platformX.Cells[1] != "05:00" {
		t.Fatalf("Platform X on 2026-03-02 = %q, want 05:00", platformX.Cells[1])
	}
	if platformX.Cells[0] != "" {
		t.Fatalf("empty day cell = %q, want blank", platformX.Cells[0])
	}
	if platformX.Total != "05:00" {
		t.Fatalf("Platform X total = %q", platformX.Total)
	}

	worked := grid.TotalRow
	if worked.Label != "Worked" {
		t.Fatalf("total row label = %q", worked.Label)
	}
	if worked.Cells[1] != "08:00" || worked.Cells[2] != "03:00" {
		t.Fatalf("worked cells = %q, %q", worked.Cells[1], worked.Cells[2])
	}
	if worked.Total != "11:00" {
		t.Fatalf("worked total = %q, want 11:00", worked.Total)
	}
	if worked.Percent != 100 {
		t.Fatalf("worked percent = %v, want 100", worked.Percent)
	}
}

func TestBuildReportGrid_InvalidMonth(t *testing.T) {
	t.Parallel()

	if _, err := BuildReportGrid(nil, nil, "03/2026"); err == nil {
		t.Fatal("expected error for invalid month")
	}
}

func TestBuildReportGrid_EmptyMonth(t *testing.T) {
	t.Parallel()

	grid, err := BuildReportGrid(timesheet.AllAllocations{}, gridProjects(), "2026-02")
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if len(grid.Rows) != 0 {
		t.Fatalf("empty month rows = %d", len(grid.Rows))
	}
	if grid.TotalRow.Total != "00:00" || grid.TotalRow.Percent != 0 {
		t.Fatalf("empty month total row = %+v", grid.TotalRow)
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		percent float64
		want    string
	}{
		{percent: 0, want: "0%"},
		{percent: 100, want: "100%"},
		{percent: 12.5, want: "12.5%"},
		{percent: 33.333333, want: "33.33%"},
		{percent: 50.10, want: "50.1%"},
		{percent: math.NaN(), want: "0%"},
	}

	for _, tc := range cases {
		if got := FormatPercent(tc.percent); got != tc.want {
			t.Fatalf("FormatPercent(%v) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	if _, err := WriterForFormat("csv"); err != nil {
		t.Fatalf("csv writer: %v", err)
	}
	if _, err := WriterForFormat(" Excel "); err != nil {
		t.Fatalf("excel writer: %v", err)
	}
	if _, err := WriterForFormat("pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
