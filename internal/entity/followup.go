package entity

import "time"

// FollowUpCadence holds the business-day offsets of the five follow-ups.
var FollowUpCadence = [5]int{3, 5, 7, 9, 11}

// ComputeFollowUpDates returns one due date per cadence value. Each one is
// counted from the anchor on its own; only Monday to Friday count, and the
// anchor day itself never does.
func ComputeFollowUpDates(anchor time.Time) [5]time.Time {
	start := DateOnly(anchor)

	var dates [5]time.Time
	for i, days := range FollowUpCadence {
		dates[i] = addBusinessDays(start, days)
	}
	return dates
}

func NewFollowUpSchedule(anchor time.Time) []FollowUpEntry {
	dates := ComputeFollowUpDates(anchor)
	schedule := make([]FollowUpEntry, 0, len(dates))
	for _, d := range dates {
		schedule = append(schedule, FollowUpEntry{DueDate: d, Completed: false})
	}
	return schedule
}

func addBusinessDays(from time.Time, days int) time.Time {
	cursor := from
	counted := 0
	for counted < days {
		cursor = cursor.AddDate(0, 0, 1)
		if IsBusinessDay(cursor) {
			counted++
		}
	}
	return cursor
}

func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
