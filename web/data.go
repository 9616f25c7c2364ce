package web

import (
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/reconcile"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/report"
	"github.com/fernandocarvalhocms-dotcom/CMS-RD/timesheet"
)

// DayView is the API shape for one day: the raw entry plus its
// reconciliation state and display-formatted totals.
type DayView struct {
	Date          string               `json:"date"`
	Entry         timesheet.DailyEntry `json:"entry"`
	Summary       reconcile.Summary    `json:"summary"`
	WorkedHHMM    string               `json:"workedHhmm"`
	AllocatedHHMM string               `json:"allocatedHhmm"`
}

func BuildDayView(date string, entry timesheet.DailyEntry) DayView {
	summary := reconcile.Check(entry)
	return DayView{
		Date:          date,
		Entry:         entry,
		Summary:       summary,
		WorkedHHMM:    timesheet.DecimalHoursToHHMM(summary.WorkedHours),
		AllocatedHHMM: timesheet.DecimalHoursToHHMM(summary.AllocatedHours),
	}
}

// MonthView wraps the monthly aggregate with the ranked project list and
// display-formatted grand totals.
type MonthView struct {
	report.MonthlyReport
	RankedProjects     []report.ProjectTotal `json:"rankedProjects"`
	TotalWorkedHHMM    string                `json:"totalWorkedHhmm"`
	TotalAllocatedHHMM string                `json:"totalAllocatedHhmm"`
}

func BuildMonthView(monthly report.MonthlyReport) MonthView {
	return MonthView{
		MonthlyReport:      monthly,
		RankedProjects:     monthly.RankedProjects(),
		TotalWorkedHHMM:    timesheet.DecimalHoursToHHMM(monthly.TotalWorkedHours),
		TotalAllocatedHHMM: timesheet.DecimalHoursToHHMM(monthly.TotalAllocatedHours),
	}
}
