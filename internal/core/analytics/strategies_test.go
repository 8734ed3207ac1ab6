package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultUnplanned(t *testing.T) {
	t.Run("counts records without a deadline", func(t *testing.T) {
		planned := record(4)
		planned.DeadlineAt = tp(at(time.March, 14, 18))

		got := analytics.DefaultUnplanned([]domain.CaseRecord{planned, record(2), record(3), canceledRecord()})

		assert.Equal(t, 2, got.UnplannedNum)
		assert.Equal(t, 5.0, got.UnplannedWorkload)
		assert.Equal(t, 66.67, got.UnplannedRate)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		got := analytics.DefaultUnplanned(nil)
		assert.Equal(t, 0, got.UnplannedNum)
		assert.Equal(t, 0.0, got.UnplannedRate)
	})
}

func TestDefaultLeadTime(t *testing.T) {
	cal := testCalendar()

	t.Run("averages passed records", func(t *testing.T) {
		fast := passedRecord(2, 2, at(time.March, 10, 13))
		fast.CreatedAt = tp(at(time.March, 10, 9))
		slow := passedRecord(4, 4, at(time.March, 12, 9))
		slow.CreatedAt = tp(at(time.March, 10, 9))

		got := analytics.DefaultLeadTime([]domain.CaseRecord{fast, slow, record(1)}, cal)

		// 4 wall-clock hours and 2 full working days.
		assert.Equal(t, 2, got.SampleNum)
		assert.Equal(t, 10.0, got.AvgLeadHours)
		assert.Equal(t, 16.0, got.MaxLeadHours)
	})

	t.Run("no samples yields zeros", func(t *testing.T) {
		got := analytics.DefaultLeadTime([]domain.CaseRecord{record(1)}, cal)
		assert.Equal(t, 0, got.SampleNum)
		assert.Equal(t, 0.0, got.AvgLeadHours)
		assert.Equal(t, 0.0, got.MaxLeadHours)
	})

	t.Run("missing timestamps are skipped", func(t *testing.T) {
		broken := passedRecord(2, 2, at(time.March, 12, 9))
		broken.CreatedAt = nil

		got := analytics.DefaultLeadTime([]domain.CaseRecord{broken}, cal)
		assert.Equal(t, 0, got.SampleNum)
	})
}
