// Package timesheet holds the data shapes shared by every layer and the
// pure hour calculation over them.
package timesheet

import "math"

// TimeShift is one work interval within a day. Both ends are 24-hour
// "HH:mm" wall-clock strings; either may be empty.
type TimeShift struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ProjectTimeAllocation attributes decimal hours to one project for one
// calendar day.
type ProjectTimeAllocation struct {
	ProjectID string  `json:"projectId"`
	Hours     float64 `json:"hours"`
}

// DailyEntry is the full record for one calendar date, keyed externally
// by its ISO date string.
type DailyEntry struct {
	Morning            TimeShift               `json:"morning"`
	Afternoon          TimeShift               `json:"afternoon"`
	Evening            TimeShift               `json:"evening"`
	ProjectAllocations []ProjectTimeAllocation `json:"projectAllocations"`
}

// AllAllocations maps ISO dates ("2006-01-02") to that day's entry.
// Days the user never touched have no key; absence means empty day.
type AllAllocations map[string]DailyEntry

// Project is a cost-tracking unit hours can be allocated to. Inactive
// projects are hidden from allocation pickers while their historical
// allocations remain valid.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Client       string `json:"client"`
	AccountingID string `json:"accountingId"`
	Active       bool   `json:"active"`
}

// Shifts returns the day's shifts in chronological order.
func (e DailyEntry) Shifts() [3]TimeShift {
	return [3]TimeShift{e.Morning, e.Afternoon, e.Evening}
}

// AllocatedHours sums the day's project allocations. NaN hour values
// count as zero.
func (e DailyEntry) AllocatedHours() float64 {
	total := 0.0
	for _, allocation := range e.ProjectAllocations {
		if math.IsNaN(allocation.Hours) {
			continue
		}
		total += allocation.Hours
	}
	return total
}

// IsEmpty reports whether the entry carries neither shift times nor
// allocations.
func (e DailyEntry) IsEmpty() bool {
	for _, shift := range e.Shifts() {
		if shift.Start != "" || shift.End != "" {
			return false
		}
	}
	return len(e.ProjectAllocations) == 0
}
