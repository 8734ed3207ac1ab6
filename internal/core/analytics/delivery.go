package analytics

import (
	"time"

	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// Delivery aggregates the throughput resolved inside each of the three fixed
// recent windows. Rate denominators are the full population's totals, not
// the window's: each window answers "what share of all work, and of all
// overdue work, did this window resolve", so windows compare on a constant
// denominator.
func Delivery(records []domain.CaseRecord, cal WorkingCalendar) map[domain.DeliveryWindow]domain.DeliveryCount {
	var totalNum, overdueNum int
	var overdueWorkload float64
	for _, r := range records {
		if r.TestResult.IsCanceled() {
			continue
		}
		totalNum++
		if r.Overdue {
			overdueNum++
			overdueWorkload += r.EvalWorkload
		}
	}

	windows := map[domain.DeliveryWindow]func(*time.Time) bool{
		domain.WindowToday:     cal.IsToday,
		domain.WindowLastWeek:  cal.IsInLastWeek,
		domain.WindowLastMonth: cal.IsInLastMonth,
	}

	out := make(map[domain.DeliveryWindow]domain.DeliveryCount, len(windows))
	for window, inWindow := range windows {
		var c domain.DeliveryCount
		for _, r := range records {
			if !r.TestResult.IsPassed() || !inWindow(r.HandledAt) {
				continue
			}
			c.CompletedNum++
			c.CompletedWorkload += r.ActualWorkload
			c.SavingWorkload += r.SavingWorkload

			if r.Overdue {
				c.OverdueNum++
				c.OverdueWorkload += r.EvalWorkload
			}
		}

		c.CompletedRate = Rate(float64(c.CompletedNum), float64(totalNum))
		c.OverdueRate = Rate(float64(c.OverdueNum), float64(overdueNum))
		c.OverdueWorkloadRate = Rate(c.OverdueWorkload, overdueWorkload)
		out[window] = c
	}
	return out
}
