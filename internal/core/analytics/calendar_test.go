package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/stretchr/testify/assert"
)

func TestWorkingDaysBetween(t *testing.T) {
	cal := testCalendar()

	t.Run("skips weekends", func(t *testing.T) {
		// Fri Mar 7 -> Wed Mar 12 crosses one weekend.
		assert.Equal(t, 3, cal.WorkingDaysBetween(day(time.March, 7), day(time.March, 12)))
	})

	t.Run("consecutive weekdays", func(t *testing.T) {
		// Mon Mar 3 -> Fri Mar 7.
		assert.Equal(t, 4, cal.WorkingDaysBetween(day(time.March, 3), day(time.March, 7)))
	})

	t.Run("same day yields zero", func(t *testing.T) {
		assert.Equal(t, 0, cal.WorkingDaysBetween(day(time.March, 10), day(time.March, 10)))
	})

	t.Run("reversed range yields zero", func(t *testing.T) {
		assert.Equal(t, 0, cal.WorkingDaysBetween(day(time.March, 12), day(time.March, 10)))
	})

	t.Run("weekend-only range yields zero", func(t *testing.T) {
		// Sat Mar 8 -> Sun Mar 9.
		assert.Equal(t, 0, cal.WorkingDaysBetween(day(time.March, 8), day(time.March, 9)))
	})
}

func TestWorkingHoursBetween(t *testing.T) {
	cal := testCalendar()

	t.Run("same weekday uses wall clock", func(t *testing.T) {
		assert.Equal(t, 3.0, cal.WorkingHoursBetween(at(time.March, 12, 9), at(time.March, 12, 12)))
	})

	t.Run("same day caps at one working day", func(t *testing.T) {
		assert.Equal(t, 8.0, cal.WorkingHoursBetween(at(time.March, 12, 1), at(time.March, 12, 23)))
	})

	t.Run("same weekend day yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, cal.WorkingHoursBetween(at(time.March, 8, 9), at(time.March, 8, 17)))
	})

	t.Run("multi day uses working days", func(t *testing.T) {
		// Mon Mar 3 -> Fri Mar 7: 4 working days after the start day.
		assert.Equal(t, 32.0, cal.WorkingHoursBetween(at(time.March, 3, 9), at(time.March, 7, 17)))
	})

	t.Run("reversed yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, cal.WorkingHoursBetween(at(time.March, 12, 12), at(time.March, 12, 9)))
	})
}

func TestCalendarWindows(t *testing.T) {
	cal := testCalendar()

	t.Run("today", func(t *testing.T) {
		assert.True(t, cal.IsToday(tp(at(time.March, 12, 1))))
		assert.False(t, cal.IsToday(tp(at(time.March, 11, 23))))
		assert.False(t, cal.IsToday(nil))
	})

	t.Run("last week", func(t *testing.T) {
		assert.True(t, cal.IsInLastWeek(tp(at(time.March, 8, 10))))
		assert.False(t, cal.IsInLastWeek(tp(at(time.March, 1, 10))))
		assert.False(t, cal.IsInLastWeek(tp(testNow.Add(time.Hour))))
		assert.False(t, cal.IsInLastWeek(nil))
	})

	t.Run("last month", func(t *testing.T) {
		assert.True(t, cal.IsInLastMonth(tp(at(time.February, 20, 10))))
		assert.False(t, cal.IsInLastMonth(tp(at(time.January, 20, 10))))
		assert.False(t, cal.IsInLastMonth(nil))
	})
}

func TestDays(t *testing.T) {
	t.Run("inclusive ascending axis", func(t *testing.T) {
		days := analytics.Days(day(time.March, 10), day(time.March, 12))
		labels := make([]string, 0, len(days))
		for _, d := range days {
			labels = append(labels, d.Format(analytics.DayLabel))
		}
		assert.Equal(t, []string{"2025-03-10", "2025-03-11", "2025-03-12"}, labels)
	})

	t.Run("single day", func(t *testing.T) {
		days := analytics.Days(day(time.March, 10), day(time.March, 10))
		assert.Len(t, days, 1)
	})

	t.Run("reversed range keeps the end day", func(t *testing.T) {
		days := analytics.Days(day(time.March, 12), day(time.March, 10))
		assert.Len(t, days, 1)
		assert.Equal(t, "2025-03-10", days[0].Format(analytics.DayLabel))
	})
}
