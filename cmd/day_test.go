package cmd

import (
	"testing"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

func TestParseShiftFlag(t *testing.T) {
	t.Parallel()

	shift, err := parseShiftFlag("08:00-12:00")
	if err != nil {
		t.Fatalf("parse shift: %v", err)
	}
	if shift.Start != "08:00" || shift.End != "12:00" {
		t.Fatalf("shift = %+v", shift)
	}

	empty, err := parseShiftFlag("   ")
	if err != nil {
		t.Fatalf("parse empty shift: %v", err)
	}
	if empty != (timesheet.TimeShift{}) {
		t.Fatalf("empty value yielded %+v", empty)
	}

	if _, err := parseShiftFlag("08:00"); err == nil {
		t.Fatal("expected error for missing separator")
	}
}

func TestParseAllocFlags(t *testing.T) {
	t.Parallel()

	allocations, err := parseAllocFlags([]string{"p-a=4", "p-b=3.5"})
	if err != nil {
		t.Fatalf("parse allocations: %v", err)
	}
	if len(allocations) != 2 {
		t.Fatalf("allocations = %+v", allocations)
	}
	if allocations[0].ProjectID != "p-a" || allocations[0].Hours != 4 {
		t.Fatalf("first allocation = %+v", allocations[0])
	}
	if allocations[1].Hours != 3.5 {
		t.Fatalf("second allocation = %+v", allocations[1])
	}

	for _, bad := range []string{"p-a", "p-a=abc", "p-a=-1"} {
		if _, err := parseAllocFlags([]string{bad}); err == nil {
			t.Fatalf("parseAllocFlags(%q): expected error", bad)
		}
	}
}

func TestValidateDateFlag(t *testing.T) {
	t.Parallel()

	date, err := validateDateFlag(" 2026-03-02 ")
	if err != nil {
		t.Fatalf("validate date: %v", err)
	}
	if date != "2026-03-02" {
		t.Fatalf("date = %q", date)
	}

	for _, bad := range []string{"02.03.2026", "2026-3-2", ""} {
		if _, err := validateDateFlag(bad); err == nil {
			t.Fatalf("validateDateFlag(%q): expected error", bad)
		}
	}
}
