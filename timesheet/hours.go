package timesheet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)
	hhmmPattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ShiftMinutes returns the elapsed minutes of one shift. A missing or
// malformed time and an end at or before the start all contribute zero;
// the function never errors.
func ShiftMinutes(shift TimeShift) int {
	start, ok := parseClock(shift.Start)
	if !ok {
		return 0
	}
	end, ok := parseClock(shift.End)
	if !ok {
		return 0
	}
	if end <= start {
		return 0
	}
	return end - start
}

func parseClock(value string) (int, bool) {
	match := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	return hours*60 + minutes, true
}

// WorkedMinutes accumulates whole minutes across the day's shifts.
// Accumulation stays in integers; division into hours happens last.
func WorkedMinutes(entry DailyEntry) int {
	total := 0
	for _, shift := range entry.Shifts() {
		total += ShiftMinutes(shift)
	}
	return total
}

// WorkedHours returns the day's worked time as decimal hours.
func WorkedHours(entry DailyEntry) float64 {
	return float64(WorkedMinutes(entry)) / 60.0
}

// DecimalHoursToHHMM renders decimal hours as a zero-padded clock
// quantity. The hour part is not clamped to 24, so a monthly total like
// 127.5 renders as "127:30". NaN and negative values render as "00:00".
func DecimalHoursToHHMM(hours float64) string {
	if math.IsNaN(hours) || hours < 0 {
		return "00:00"
	}
	totalMinutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// HHMMToDecimalHours parses an "H:MM" quantity back into decimal hours.
// Anything that does not match the pattern returns 0.
func HHMMToDecimalHours(value string) float64 {
	match := hhmmPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0
	}
	hours, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(match[2])
	if err != nil {
		return 0
	}
	return float64(hours) + float64(minutes)/60.0
}
