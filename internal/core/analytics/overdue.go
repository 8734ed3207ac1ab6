package analytics

import (
	"math"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// riskThresholds maps the projected clearing days to a coarse risk level.
// Ordered ascending; the first matching row wins.
var riskThresholds = []struct {
	maxDays float64
	level   domain.RiskLevel
}{
	{1, domain.RiskLow},
	{3, domain.RiskMedium},
	{7, domain.RiskHigh},
	{math.Inf(1), domain.RiskCritical},
}

func riskLevelFor(days float64) domain.RiskLevel {
	for _, t := range riskThresholds {
		if days <= t.maxDays {
			return t.level
		}
	}
	return domain.RiskCritical
}

// AssessOverdue quantifies overdue work and projects how long it takes to
// clear. dailyProcessedWorkload is the velocity baseline from Backlog;
// callers must pass the same value they surfaced there.
func AssessOverdue(
	records []domain.CaseRecord,
	cal WorkingCalendar,
	now time.Time,
	dailyProcessedWorkload float64,
	defaultDailyWorkload float64,
	weeklyWorkingHours float64,
) domain.OverdueAssessment {
	var out domain.OverdueAssessment

	var totalNum int
	var totalWorkload float64
	for _, r := range records {
		if r.TestResult.IsCanceled() {
			continue
		}
		totalNum++
		totalWorkload += r.EvalWorkload

		if !r.Overdue {
			continue
		}
		out.OverdueNum++
		out.OverdueWorkload += r.EvalWorkload
		if r.DeadlineAt != nil && r.DeadlineAt.Before(now) {
			out.OverdueHours += cal.WorkingHoursBetween(*r.DeadlineAt, now)
		}
	}

	out.OverdueRate = Rate(float64(out.OverdueNum), float64(totalNum))
	out.OverdueWorkloadRate = Rate(out.OverdueWorkload, totalWorkload)
	out.OverdueHours = FormatFixed(out.OverdueHours, 2)

	// The workload/velocity ratio is only sign-checked here; the day
	// estimate is the velocity itself, not the ratio. Reports downstream
	// are keyed to these numbers, so the formula stays as it has always
	// been.
	overDays := DivideOr(out.OverdueWorkload, dailyProcessedWorkload, 0)
	if overDays <= 0 {
		overDays = defaultDailyWorkload
	} else {
		overDays = dailyProcessedWorkload
	}

	out.ProcessingHours = FormatFixed(overDays*weeklyWorkingHours, 2)
	out.RiskLevel = riskLevelFor(overDays)
	return out
}
