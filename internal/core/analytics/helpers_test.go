package analytics_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// Wednesday, mid-week, so "yesterday" and "tomorrow" are working days.
var testNow = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time {
	return testNow
}

func testCalendar() *analytics.WorkweekCalendar {
	return analytics.NewWorkweekCalendar(8, fixedNow)
}

func tp(t time.Time) *time.Time {
	return &t
}

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func at(month time.Month, d, hour int) time.Time {
	return time.Date(2025, month, d, hour, 0, 0, 0, time.UTC)
}

// record builds a minimal pending record with the given planned workload.
func record(eval float64) domain.CaseRecord {
	created := testNow.AddDate(0, 0, -10)
	return domain.CaseRecord{
		ID:           uuid.New(),
		PlanID:       uuid.Nil,
		TestResult:   domain.ResultPending,
		ReviewStatus: domain.ReviewPending,
		CreatedAt:    &created,
		EvalWorkload: eval,
	}
}

// passedRecord builds a passed record handled at the given time.
func passedRecord(eval, actual float64, handledAt time.Time) domain.CaseRecord {
	r := record(eval)
	r.TestResult = domain.ResultPassed
	r.ActualWorkload = actual
	r.HandledAt = tp(handledAt)
	return r
}

func canceledRecord() domain.CaseRecord {
	r := record(0)
	r.TestResult = domain.ResultCanceled
	return r
}
