package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBacklog(t *testing.T) {
	cal := testCalendar()

	t.Run("throughput from completed records", func(t *testing.T) {
		first := passedRecord(8, 8, at(time.March, 5, 16))
		first.CreatedAt = tp(at(time.March, 3, 9))
		second := passedRecord(4, 4, at(time.March, 7, 16))
		second.CreatedAt = tp(at(time.March, 3, 9))

		got := analytics.Backlog([]domain.CaseRecord{first, second, record(6)}, cal, 8)

		// 12 eval workload cleared over Mar 3 -> Mar 7, 4 working days.
		assert.Equal(t, 3.0, got.DailyProcessedWorkload)
		assert.Equal(t, 0.5, got.DailyProcessedNum)
		assert.Equal(t, 1, got.BacklogNum)
		assert.Equal(t, 6.0, got.BacklogWorkload)
		assert.Equal(t, 33.33, got.BacklogRate)
		assert.Equal(t, 33.33, got.BacklogWorkloadRate)
		assert.Equal(t, 2.0, got.ClearanceDays)
	})

	t.Run("no completed work keeps the default baseline", func(t *testing.T) {
		got := analytics.Backlog([]domain.CaseRecord{record(4)}, cal, 8)

		assert.Equal(t, 8.0, got.DailyProcessedWorkload)
		assert.Equal(t, 0.0, got.DailyProcessedNum)
		assert.Equal(t, 0.5, got.ClearanceDays)
	})

	t.Run("empty snapshot keeps the default baseline", func(t *testing.T) {
		got := analytics.Backlog(nil, cal, 8)

		assert.Equal(t, 8.0, got.DailyProcessedWorkload)
		assert.Equal(t, 0, got.BacklogNum)
		assert.Equal(t, 0.0, got.BacklogRate)
		assert.Equal(t, 0.0, got.ClearanceDays)
	})

	t.Run("missing creation date cannot anchor the window", func(t *testing.T) {
		completed := passedRecord(8, 8, at(time.March, 7, 16))
		completed.CreatedAt = nil

		got := analytics.Backlog([]domain.CaseRecord{completed}, cal, 8)

		assert.Equal(t, 8.0, got.DailyProcessedWorkload)
		assert.Equal(t, 0.0, got.DailyProcessedNum)
	})

	t.Run("only unfinished records back the backlog", func(t *testing.T) {
		failed := record(3)
		failed.TestResult = domain.ResultFailed
		underway := record(2)
		underway.TestResult = domain.ResultUnderway

		got := analytics.Backlog([]domain.CaseRecord{failed, underway, canceledRecord(), record(5)}, cal, 8)

		assert.Equal(t, 2, got.BacklogNum)
		assert.Equal(t, 7.0, got.BacklogWorkload)
		// Canceled is out of the denominator, failed stays in.
		assert.Equal(t, 66.67, got.BacklogRate)
	})
}
