package analytics

import "time"

// WorkingCalendar measures working time between timestamps and classifies a
// timestamp against the fixed recent windows. Implementations must treat a
// nil timestamp as outside every window rather than failing.
type WorkingCalendar interface {
	WorkingDaysBetween(start, end time.Time) int
	WorkingHoursBetween(start, end time.Time) float64
	IsToday(ts *time.Time) bool
	IsInLastWeek(ts *time.Time) bool
	IsInLastMonth(ts *time.Time) bool
}

// WorkweekCalendar is a Monday-to-Friday WorkingCalendar with a fixed number
// of working hours per day. The clock is injectable so tests can pin "now".
type WorkweekCalendar struct {
	hoursPerDay float64
	now         func() time.Time
}

var _ WorkingCalendar = (*WorkweekCalendar)(nil)

// NewWorkweekCalendar creates a workweek calendar. A non-positive
// hoursPerDay falls back to 8; a nil clock falls back to time.Now.
func NewWorkweekCalendar(hoursPerDay float64, now func() time.Time) *WorkweekCalendar {
	if hoursPerDay <= 0 {
		hoursPerDay = 8
	}
	if now == nil {
		now = time.Now
	}
	return &WorkweekCalendar{hoursPerDay: hoursPerDay, now: now}
}

// WorkingDaysBetween counts the weekdays after start's day up to and
// including end's day. A same-day or reversed range yields 0.
func (c *WorkweekCalendar) WorkingDaysBetween(start, end time.Time) int {
	startDay := truncateDay(start)
	endDay := truncateDay(end)
	if !endDay.After(startDay) {
		return 0
	}

	days := 0
	for d := startDay.AddDate(0, 0, 1); !d.After(endDay); d = d.AddDate(0, 0, 1) {
		if isWeekday(d.Weekday()) {
			days++
		}
	}
	return days
}

// WorkingHoursBetween converts the working days between start and end into
// hours. Within a single weekday the raw wall-clock gap is used, capped at
// one working day.
func (c *WorkweekCalendar) WorkingHoursBetween(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}

	if sameDay(start, end) {
		if !isWeekday(start.Weekday()) {
			return 0
		}
		hours := end.Sub(start).Hours()
		if hours > c.hoursPerDay {
			hours = c.hoursPerDay
		}
		return hours
	}

	return float64(c.WorkingDaysBetween(start, end)) * c.hoursPerDay
}

// IsToday reports whether ts falls on the current calendar day.
func (c *WorkweekCalendar) IsToday(ts *time.Time) bool {
	if ts == nil {
		return false
	}
	return sameDay(*ts, c.now())
}

// IsInLastWeek reports whether ts falls within the last 7 days, now included.
func (c *WorkweekCalendar) IsInLastWeek(ts *time.Time) bool {
	return c.inLastDays(ts, 7)
}

// IsInLastMonth reports whether ts falls within the last 30 days.
func (c *WorkweekCalendar) IsInLastMonth(ts *time.Time) bool {
	return c.inLastDays(ts, 30)
}

func (c *WorkweekCalendar) inLastDays(ts *time.Time, days int) bool {
	if ts == nil {
		return false
	}
	now := c.now()
	return !ts.After(now) && ts.After(now.AddDate(0, 0, -days))
}

func isWeekday(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

func truncateDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
