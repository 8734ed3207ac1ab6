package analytics

import "github.com/mkaral/testplan-backend/internal/core/domain"

// Progress computes the total-versus-completed snapshot for a record set.
// Canceled records never counted as planned work and are excluded from every
// total.
func Progress(records []domain.CaseRecord) domain.ProgressCount {
	var out domain.ProgressCount

	for _, r := range records {
		if r.TestResult.IsCanceled() {
			continue
		}
		out.TotalNum++
		out.EvalWorkload += r.EvalWorkload

		if r.TestResult.IsPassed() {
			out.CompletedNum++
			out.CompletedWorkload += r.ActualWorkload
		}
	}

	out.CompletedRate = Rate(float64(out.CompletedNum), float64(out.TotalNum))
	out.CompletedWorkloadRate = Rate(out.CompletedWorkload, out.EvalWorkload)
	return out
}
