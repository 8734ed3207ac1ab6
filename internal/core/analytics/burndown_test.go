package analytics_test

import (
	"testing"
	"time"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointValues(points []domain.BurndownPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Value)
	}
	return out
}

func pointLabels(points []domain.BurndownPoint) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.Label)
	}
	return out
}

func TestBurndown(t *testing.T) {
	start := day(time.March, 10)
	end := day(time.March, 14)

	records := []domain.CaseRecord{
		passedRecord(10, 10, at(time.March, 10, 16)),
		passedRecord(10, 10, at(time.March, 11, 16)),
		record(10), record(10), record(10),
		canceledRecord(),
	}

	got := analytics.Burndown(records, start, end, testNow)
	require.Len(t, got, 2)
	num := got[domain.BurndownNum]
	workload := got[domain.BurndownWorkload]

	t.Run("axis covers every day inclusive", func(t *testing.T) {
		want := []string{"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13", "2025-03-14"}
		assert.Equal(t, want, pointLabels(num.Expected))
		assert.Equal(t, want, pointLabels(num.Remaining))
		assert.Equal(t, want, pointLabels(workload.Expected))
	})

	t.Run("expected burns straight to zero", func(t *testing.T) {
		assert.Equal(t, []float64{4, 3, 2, 1, 0}, pointValues(num.Expected))
		assert.Equal(t, []float64{40, 30, 20, 10, 0}, pointValues(workload.Expected))
	})

	t.Run("remaining freezes after today", func(t *testing.T) {
		assert.Equal(t, []float64{4, 3, 3, 3, 3}, pointValues(num.Remaining))
		assert.Equal(t, []float64{40, 30, 30, 30, 30}, pointValues(workload.Remaining))
	})
}

func TestBurndownEdgeCases(t *testing.T) {
	t.Run("empty snapshot stays flat at zero", func(t *testing.T) {
		got := analytics.Burndown(nil, day(time.March, 10), day(time.March, 12), testNow)

		for _, series := range got {
			require.Len(t, series.Expected, 3)
			assert.Equal(t, []float64{0, 0, 0}, pointValues(series.Expected))
			assert.Equal(t, []float64{0, 0, 0}, pointValues(series.Remaining))
		}
	})

	t.Run("single day window", func(t *testing.T) {
		records := []domain.CaseRecord{record(4), passedRecord(4, 4, at(time.March, 12, 9))}

		got := analytics.Burndown(records, day(time.March, 12), day(time.March, 12), testNow)
		num := got[domain.BurndownNum]

		require.Len(t, num.Expected, 1)
		assert.Equal(t, []float64{0}, pointValues(num.Expected))
		assert.Equal(t, []float64{1}, pointValues(num.Remaining))
	})

	t.Run("window entirely in the future keeps remaining at the total", func(t *testing.T) {
		records := []domain.CaseRecord{record(4), record(4)}

		got := analytics.Burndown(records, day(time.March, 20), day(time.March, 21), testNow)

		assert.Equal(t, []float64{2, 2}, pointValues(got[domain.BurndownNum].Remaining))
		assert.Equal(t, []float64{8, 8}, pointValues(got[domain.BurndownWorkload].Remaining))
	})

	t.Run("window entirely in the past burns normally", func(t *testing.T) {
		records := []domain.CaseRecord{
			passedRecord(4, 4, at(time.March, 4, 15)),
			record(4),
		}

		got := analytics.Burndown(records, day(time.March, 3), day(time.March, 7), testNow)
		num := got[domain.BurndownNum]

		assert.Equal(t, []float64{2, 1, 1, 1, 1}, pointValues(num.Remaining))
	})

	t.Run("workload line floors near the axis", func(t *testing.T) {
		records := []domain.CaseRecord{record(1), record(1), record(1)}

		got := analytics.Burndown(records, day(time.March, 10), day(time.March, 13), testNow)
		expected := pointValues(got[domain.BurndownWorkload].Expected)

		assert.Equal(t, []float64{2.25, 1.5, 0, 0}, expected)
	})

	t.Run("completion before the window never appears on the axis", func(t *testing.T) {
		records := []domain.CaseRecord{
			passedRecord(4, 4, at(time.March, 5, 9)),
			record(4),
		}

		got := analytics.Burndown(records, day(time.March, 10), day(time.March, 12), testNow)
		num := got[domain.BurndownNum]

		// The pre-window completion is not tied to any axis day, so the
		// remaining line starts at the full total.
		assert.Equal(t, []float64{2, 2, 2}, pointValues(num.Remaining))
	})
}
