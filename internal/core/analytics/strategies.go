package analytics

import "github.com/mkaral/testplan-backend/internal/core/domain"

// UnplannedFunc produces the unplanned-work slice of an overview. The slot
// is pluggable so callers can swap in their own notion of unplanned work.
type UnplannedFunc func(records []domain.CaseRecord) domain.UnplannedCount

// LeadTimeFunc produces the lead-time slice of an overview.
type LeadTimeFunc func(records []domain.CaseRecord, cal WorkingCalendar) domain.LeadTimeCount

// DefaultUnplanned counts non-canceled records that carry no deadline: work
// that entered the plan without ever being scheduled.
func DefaultUnplanned(records []domain.CaseRecord) domain.UnplannedCount {
	var out domain.UnplannedCount
	var totalNum int

	for _, r := range records {
		if r.TestResult.IsCanceled() {
			continue
		}
		totalNum++
		if r.DeadlineAt != nil {
			continue
		}
		out.UnplannedNum++
		out.UnplannedWorkload += r.EvalWorkload
	}

	out.UnplannedRate = Rate(float64(out.UnplannedNum), float64(totalNum))
	return out
}

// DefaultLeadTime averages the working hours from creation to completion
// over passed records carrying both timestamps.
func DefaultLeadTime(records []domain.CaseRecord, cal WorkingCalendar) domain.LeadTimeCount {
	var out domain.LeadTimeCount
	var sum float64

	for _, r := range records {
		if !r.TestResult.IsPassed() || r.CreatedAt == nil || r.HandledAt == nil {
			continue
		}
		hours := cal.WorkingHoursBetween(*r.CreatedAt, *r.HandledAt)
		out.SampleNum++
		sum += hours
		if hours > out.MaxLeadHours {
			out.MaxLeadHours = hours
		}
	}

	if out.SampleNum > 0 {
		out.AvgLeadHours = FormatFixed(sum/float64(out.SampleNum), 2)
	}
	out.MaxLeadHours = FormatFixed(out.MaxLeadHours, 2)
	return out
}
