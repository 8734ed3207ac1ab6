package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	t.Run("canceled records excluded from totals", func(t *testing.T) {
		records := make([]domain.CaseRecord, 0, 10)
		for i := 0; i < 4; i++ {
			records = append(records, passedRecord(2, 2, at(time.March, 10, 10)))
		}
		for i := 0; i < 2; i++ {
			records = append(records, canceledRecord())
		}
		for i := 0; i < 4; i++ {
			records = append(records, record(2))
		}

		got := analytics.Progress(records)

		assert.Equal(t, 8, got.TotalNum)
		assert.Equal(t, 4, got.CompletedNum)
		assert.Equal(t, 50.0, got.CompletedRate)
		assert.Equal(t, 16.0, got.EvalWorkload)
		assert.Equal(t, 8.0, got.CompletedWorkload)
		assert.Equal(t, 50.0, got.CompletedWorkloadRate)
	})

	t.Run("failed records count toward totals only", func(t *testing.T) {
		failed := record(3)
		failed.TestResult = domain.ResultFailed

		got := analytics.Progress([]domain.CaseRecord{failed, record(3)})

		assert.Equal(t, 2, got.TotalNum)
		assert.Equal(t, 0, got.CompletedNum)
		assert.Equal(t, 0.0, got.CompletedRate)
		assert.Equal(t, 6.0, got.EvalWorkload)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		got := analytics.Progress(nil)

		assert.Equal(t, 0, got.TotalNum)
		assert.Equal(t, 0.0, got.CompletedRate)
		assert.Equal(t, 0.0, got.CompletedWorkloadRate)
	})

	t.Run("completed workload uses actual not eval", func(t *testing.T) {
		got := analytics.Progress([]domain.CaseRecord{passedRecord(10, 6, at(time.March, 11, 9))})

		assert.Equal(t, 10.0, got.EvalWorkload)
		assert.Equal(t, 6.0, got.CompletedWorkload)
		assert.Equal(t, 60.0, got.CompletedWorkloadRate)
	})
}
