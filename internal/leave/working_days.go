package leave

import "time"

const dateLayout = "2006-01-02"

// CountWorkingDays counts the days in [start, end] inclusive that are
// neither Saturday/Sunday nor listed holidays. Comparison is date-only;
// time-of-day is ignored.
func CountWorkingDays(start, end time.Time, holidays map[string]struct{}) int {
	start = truncateToDate(start)
	end = truncateToDate(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := holidays[d.Format(dateLayout)]; isHoliday {
			continue
		}
		count++
	}
	return count
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
