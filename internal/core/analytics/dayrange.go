package analytics

import "time"

// DayLabel is the label format for burndown points.
const DayLabel = "2006-01-02"

// Days returns every calendar day from start to end inclusive, ascending.
// The end day is always the final element, so a reversed range collapses to
// a single point rather than an empty axis.
func Days(start, end time.Time) []time.Time {
	startDay := truncateDay(start)
	endDay := truncateDay(end)

	days := make([]time.Time, 0, 8)
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	if len(days) == 0 || !days[len(days)-1].Equal(endDay) {
		days = append(days, endDay)
	}
	return days
}
