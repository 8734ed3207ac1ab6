package analytics

import (
	"time"

	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// Burndown projects the NUM and WORKLOAD burndown series over the day axis
// from start to end inclusive.
//
// The expected line is a straight burn from the total to zero across the
// window. The remaining line subtracts each day's completed amount, but only
// up to and including today: days after today keep the last known value, so
// the line never extrapolates into data that does not exist yet.
func Burndown(records []domain.CaseRecord, start, end, today time.Time) map[domain.BurndownMetric]domain.BurndownSeries {
	days := Days(start, end)
	dayCount := len(days)
	todayDay := truncateDay(today)

	var totalNum int
	var totalWorkload float64
	numByDay := make(map[string]int)
	workloadByDay := make(map[string]float64)

	for _, r := range records {
		if r.TestResult.IsCanceled() {
			continue
		}
		totalNum++
		totalWorkload += r.EvalWorkload

		if !r.TestResult.IsFinished() || r.HandledAt == nil {
			continue
		}
		label := r.HandledAt.Format(DayLabel)
		numByDay[label]++
		workloadByDay[label] += r.ActualWorkload
	}

	numSeries := domain.BurndownSeries{
		Expected:  make([]domain.BurndownPoint, 0, dayCount),
		Remaining: make([]domain.BurndownPoint, 0, dayCount),
	}
	workloadSeries := domain.BurndownSeries{
		Expected:  make([]domain.BurndownPoint, 0, dayCount),
		Remaining: make([]domain.BurndownPoint, 0, dayCount),
	}

	numStep := float64(totalNum) / float64(dayCount)
	workloadStep := totalWorkload / float64(dayCount)
	remainingNum := totalNum
	remainingWorkload := totalWorkload

	for i, day := range days {
		label := day.Format(DayLabel)

		// Straight-line burn, truncated to whole cases.
		idealNum := float64(totalNum) - float64(i+1)*numStep
		numSeries.Expected = append(numSeries.Expected, domain.BurndownPoint{
			Label: label,
			Value: float64(int(idealNum)),
		})

		// The workload line floors to zero near the end of the window, where
		// float drift would otherwise leave a sliver above the axis.
		idealWorkload := totalWorkload - float64(i+1)*workloadStep
		if idealWorkload <= 1 {
			idealWorkload = 0
		}
		workloadSeries.Expected = append(workloadSeries.Expected, domain.BurndownPoint{
			Label: label,
			Value: FormatFixed(idealWorkload, 2),
		})

		if !day.After(todayDay) {
			remainingNum -= numByDay[label]
			remainingWorkload -= workloadByDay[label]
		}
		numSeries.Remaining = append(numSeries.Remaining, domain.BurndownPoint{
			Label: label,
			Value: float64(remainingNum),
		})
		workloadSeries.Remaining = append(workloadSeries.Remaining, domain.BurndownPoint{
			Label: label,
			Value: FormatFixed(remainingWorkload, 2),
		})
	}

	return map[domain.BurndownMetric]domain.BurndownSeries{
		domain.BurndownNum:      numSeries,
		domain.BurndownWorkload: workloadSeries,
	}
}
