package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelivery(t *testing.T) {
	cal := testCalendar()

	today := passedRecord(3, 2, at(time.March, 12, 10))
	today.Overdue = true
	today.SavingWorkload = 1

	thisWeek := passedRecord(4, 4, at(time.March, 8, 10))
	thisMonth := passedRecord(2, 1, at(time.February, 20, 10))
	thisMonth.Overdue = true

	pendingOverdue := record(5)
	pendingOverdue.Overdue = true

	records := []domain.CaseRecord{today, thisWeek, thisMonth, pendingOverdue, canceledRecord()}

	got := analytics.Delivery(records, cal)
	require.Len(t, got, 3)

	t.Run("today", func(t *testing.T) {
		c := got[domain.WindowToday]
		assert.Equal(t, 1, c.CompletedNum)
		assert.Equal(t, 25.0, c.CompletedRate)
		assert.Equal(t, 2.0, c.CompletedWorkload)
		assert.Equal(t, 1.0, c.SavingWorkload)
		assert.Equal(t, 1, c.OverdueNum)
		assert.Equal(t, 33.33, c.OverdueRate)
		assert.Equal(t, 3.0, c.OverdueWorkload)
		assert.Equal(t, 30.0, c.OverdueWorkloadRate)
	})

	t.Run("windows nest", func(t *testing.T) {
		week := got[domain.WindowLastWeek]
		month := got[domain.WindowLastMonth]

		assert.Equal(t, 2, week.CompletedNum)
		assert.Equal(t, 50.0, week.CompletedRate)
		assert.Equal(t, 3, month.CompletedNum)
		assert.Equal(t, 75.0, month.CompletedRate)
		assert.Equal(t, 2, month.OverdueNum)
		assert.Equal(t, 66.67, month.OverdueRate)
		assert.Equal(t, 50.0, month.OverdueWorkloadRate)
	})

	t.Run("unresolved overdue work never counts as delivered", func(t *testing.T) {
		month := got[domain.WindowLastMonth]
		assert.Equal(t, 5.0, month.OverdueWorkload)
	})

	t.Run("empty snapshot yields three zero windows", func(t *testing.T) {
		empty := analytics.Delivery(nil, cal)
		require.Len(t, empty, 3)
		for _, c := range empty {
			assert.Equal(t, 0, c.CompletedNum)
			assert.Equal(t, 0.0, c.CompletedRate)
			assert.Equal(t, 0.0, c.OverdueRate)
		}
	})
}
