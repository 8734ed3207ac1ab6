package analytics

import (
	"sort"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// Backlog sizes the unfinished work and derives the empirical daily
// throughput of the population: workload cleared per working day between the
// earliest creation and the latest completion among finished records.
//
// The returned DailyProcessedWorkload is the single velocity baseline for
// the whole overview; callers thread it into the overdue assessment instead
// of recomputing it.
func Backlog(records []domain.CaseRecord, cal WorkingCalendar, defaultDailyWorkload float64) domain.BacklogCount {
	out := domain.BacklogCount{DailyProcessedWorkload: defaultDailyWorkload}

	var totalNum int
	var totalWorkload float64
	completed := make([]domain.CaseRecord, 0, len(records))

	for _, r := range records {
		if !r.TestResult.IsCanceled() {
			totalNum++
			totalWorkload += r.EvalWorkload
		}
		if r.TestResult.IsPassed() && r.HandledAt != nil {
			completed = append(completed, r)
		}
	}

	if len(completed) > 0 {
		sort.Slice(completed, func(i, j int) bool {
			return completed[i].HandledAt.Before(*completed[j].HandledAt)
		})

		var earliest *time.Time
		var processedWorkload float64
		for _, r := range completed {
			processedWorkload += r.EvalWorkload
			if r.CreatedAt == nil {
				// Dirty data: a completed record without a creation date
				// cannot anchor the throughput window.
				continue
			}
			if earliest == nil || r.CreatedAt.Before(*earliest) {
				earliest = r.CreatedAt
			}
		}

		processedDays := 0
		if earliest != nil {
			processedDays = cal.WorkingDaysBetween(*earliest, *completed[len(completed)-1].HandledAt)
		}

		if processedDays > 0 && processedWorkload > 0 {
			out.DailyProcessedWorkload = FormatFixed(processedWorkload/float64(processedDays), 2)
		}
		if processedDays > 0 {
			out.DailyProcessedNum = FormatFixed(float64(len(completed))/float64(processedDays), 2)
		}
	}

	for _, r := range records {
		if r.TestResult.IsFinished() {
			continue
		}
		out.BacklogNum++
		out.BacklogWorkload += r.EvalWorkload
	}

	out.BacklogRate = Rate(float64(out.BacklogNum), float64(totalNum))
	out.BacklogWorkloadRate = Rate(out.BacklogWorkload, totalWorkload)

	if out.DailyProcessedWorkload > 0 {
		out.ClearanceDays = FormatFixed(out.BacklogWorkload/out.DailyProcessedWorkload, 2)
	}
	return out
}
