// Package reconcile validates the relationship between a day's worked
// shifts and its project allocations, and rewrites allocations where an
// operation calls for it. Everything here is pure; persistence and save
// gating live with the callers.
package reconcile

import (
	"errors"
	"math"
	"sort"

	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// Epsilon absorbs rounding introduced by HH:mm <-> decimal-hours
// conversions. One minute is 0.0166 hours, so anything below a
// hundredth of an hour is conversion noise.
const Epsilon = 0.01

var (
	ErrNoWorkedHours = errors.New("fill in worked hours before distributing")
	ErrNoProjects    = errors.New("no projects selected for distribution")
)

// Summary describes how a day's allocations relate to its worked time.
type Summary struct {
	WorkedHours    float64 `json:"workedHours"`
	AllocatedHours float64 `json:"allocatedHours"`
	Delta          float64 `json:"delta"`
	Match          bool    `json:"match"`
	OverAllocated  bool    `json:"overAllocated"`
}

// Check compares the day's worked total against the sum of its project
// allocations. A day with no shifts and no allocations counts as
// matched: an untouched day is valid and there is nothing to reconcile.
func Check(entry timesheet.DailyEntry) Summary {
	worked := timesheet.WorkedHours(entry)
	allocated := entry.AllocatedHours()
	delta := worked - allocated
	return Summary{
		WorkedHours:    worked,
		AllocatedHours: allocated,
		Delta:          delta,
		Match:          math.Abs(delta) < Epsilon,
		OverAllocated:  allocated > worked+Epsilon,
	}
}

// Distribute replaces the day's allocation list with one equal share of
// the worked total per selected project. The result always reconciles,
// since the shares are an exact partition of the worked hours.
func Distribute(entry timesheet.DailyEntry, projectIDs []string) (timesheet.DailyEntry, error) {
	worked := timesheet.WorkedHours(entry)
	if worked <= 0 {
		return entry, ErrNoWorkedHours
	}
	if len(projectIDs) == 0 {
		return entry, ErrNoProjects
	}

	share := worked / float64(len(projectIDs))
	allocations := make([]timesheet.ProjectTimeAllocation, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		allocations = append(allocations, timesheet.ProjectTimeAllocation{
			ProjectID: projectID,
			Hours:     share,
		})
	}

	entry.ProjectAllocations = allocations
	return entry, nil
}

// StripProject removes every allocation referencing projectID across all
// days and returns the changed dates in ascending order. Shift times and
// other projects' allocations stay untouched; a day whose last
// allocation is stripped keeps its now-empty record.
func StripProject(all timesheet.AllAllocations, projectID string) (timesheet.AllAllocations, []string) {
	out := make(timesheet.AllAllocations, len(all))
	changed := make([]string, 0)

	for date, entry := range all {
		kept := make([]timesheet.ProjectTimeAllocation, 0, len(entry.ProjectAllocations))
		removed := false
		for _, allocation := range entry.ProjectAllocations {
			if allocation.ProjectID == projectID {
				removed = true
				continue
			}
			kept = append(kept, allocation)
		}
		if removed {
			entry.ProjectAllocations = kept
			changed = append(changed, date)
		}
		out[date] = entry
	}

	sort.Strings(changed)
	return out, changed
}
