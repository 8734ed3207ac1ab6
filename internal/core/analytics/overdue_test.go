package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func overdueRecord(eval float64, deadline time.Time) domain.CaseRecord {
	r := record(eval)
	r.Overdue = true
	r.DeadlineAt = tp(deadline)
	return r
}

func TestAssessOverdue(t *testing.T) {
	cal := testCalendar()

	t.Run("single overdue record", func(t *testing.T) {
		records := []domain.CaseRecord{overdueRecord(4, at(time.March, 11, 12))}

		got := analytics.AssessOverdue(records, cal, testNow, 3, 8, 40)

		assert.Equal(t, 1, got.OverdueNum)
		assert.Equal(t, 100.0, got.OverdueRate)
		assert.Equal(t, 4.0, got.OverdueWorkload)
		assert.Equal(t, 100.0, got.OverdueWorkloadRate)
		assert.Equal(t, 8.0, got.OverdueHours)
		assert.Equal(t, 120.0, got.ProcessingHours)
		assert.Equal(t, domain.RiskMedium, got.RiskLevel)
	})

	t.Run("no overdue work projects from the default", func(t *testing.T) {
		got := analytics.AssessOverdue([]domain.CaseRecord{record(4)}, cal, testNow, 3, 8, 40)

		assert.Equal(t, 0, got.OverdueNum)
		assert.Equal(t, 0.0, got.OverdueRate)
		assert.Equal(t, 320.0, got.ProcessingHours)
		assert.Equal(t, domain.RiskCritical, got.RiskLevel)
	})

	t.Run("canceled records stay out entirely", func(t *testing.T) {
		canceled := canceledRecord()
		canceled.Overdue = true
		canceled.DeadlineAt = tp(at(time.March, 10, 9))

		got := analytics.AssessOverdue([]domain.CaseRecord{canceled, record(4)}, cal, testNow, 3, 8, 40)

		assert.Equal(t, 0, got.OverdueNum)
		assert.Equal(t, 0.0, got.OverdueHours)
	})

	t.Run("future deadline adds no overdue hours", func(t *testing.T) {
		records := []domain.CaseRecord{overdueRecord(4, at(time.March, 14, 12))}

		got := analytics.AssessOverdue(records, cal, testNow, 3, 8, 40)

		assert.Equal(t, 1, got.OverdueNum)
		assert.Equal(t, 0.0, got.OverdueHours)
	})

	t.Run("risk level follows the velocity baseline", func(t *testing.T) {
		records := []domain.CaseRecord{overdueRecord(4, at(time.March, 11, 12))}

		cases := []struct {
			daily float64
			want  domain.RiskLevel
		}{
			{1, domain.RiskLow},
			{3, domain.RiskMedium},
			{7, domain.RiskHigh},
			{7.5, domain.RiskCritical},
		}
		for _, tc := range cases {
			got := analytics.AssessOverdue(records, cal, testNow, tc.daily, 8, 40)
			assert.Equal(t, tc.want, got.RiskLevel)
		}
	})
}
