package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultBreakdown(t *testing.T) {
	t.Run("every result zero-filled", func(t *testing.T) {
		got := analytics.ResultBreakdown(nil)

		require.Len(t, got, len(domain.TestResults))
		for _, r := range domain.TestResults {
			assert.Contains(t, got, r)
			assert.Equal(t, 0, got[r])
		}
	})

	t.Run("counts by result", func(t *testing.T) {
		records := []domain.CaseRecord{
			record(1), record(1),
			passedRecord(1, 1, at(time.March, 10, 9)),
			canceledRecord(),
		}

		got := analytics.ResultBreakdown(records)

		assert.Equal(t, 2, got[domain.ResultPending])
		assert.Equal(t, 1, got[domain.ResultPassed])
		assert.Equal(t, 1, got[domain.ResultCanceled])
		assert.Equal(t, 0, got[domain.ResultFailed])
		assert.Equal(t, 0, got[domain.ResultUnderway])
	})

	t.Run("unknown result ignored", func(t *testing.T) {
		stray := record(1)
		stray.TestResult = domain.TestResult("ARCHIVED")

		got := analytics.ResultBreakdown([]domain.CaseRecord{stray})

		require.Len(t, got, len(domain.TestResults))
		assert.NotContains(t, got, domain.TestResult("ARCHIVED"))
	})
}

func TestReviewBreakdown(t *testing.T) {
	reviewed := record(1)
	reviewed.ReviewStatus = domain.ReviewPassed

	got := analytics.ReviewBreakdown([]domain.CaseRecord{reviewed, record(1)})

	require.Len(t, got, len(domain.ReviewStatuses))
	assert.Equal(t, 1, got[domain.ReviewPassed])
	assert.Equal(t, 1, got[domain.ReviewPending])
	assert.Equal(t, 0, got[domain.ReviewUnderReview])
	assert.Equal(t, 0, got[domain.ReviewFailed])
}
