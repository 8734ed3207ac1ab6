package analytics

import "github.com/mkaral/testplan-backend/internal/core/domain"

// CountBy tallies records over a closed enum value set. Every member of the
// set appears in the result, zero-filled when absent, so consumers never
// interpret a missing key. Values outside the set are ignored.
func CountBy[E comparable](records []domain.CaseRecord, values []E, key func(domain.CaseRecord) E) map[E]int {
	out := make(map[E]int, len(values))
	for _, v := range values {
		out[v] = 0
	}
	for _, r := range records {
		k := key(r)
		if _, ok := out[k]; ok {
			out[k]++
		}
	}
	return out
}

// ResultBreakdown tallies records by test result over the full result set.
func ResultBreakdown(records []domain.CaseRecord) map[domain.TestResult]int {
	return CountBy(records, domain.TestResults, func(r domain.CaseRecord) domain.TestResult {
		return r.TestResult
	})
}

// ReviewBreakdown tallies records by review status over the full status set.
func ReviewBreakdown(records []domain.CaseRecord) map[domain.ReviewStatus]int {
	return CountBy(records, domain.ReviewStatuses, func(r domain.CaseRecord) domain.ReviewStatus {
		return r.ReviewStatus
	})
}
