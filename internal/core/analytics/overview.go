package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// Engine-wide defaults, overridable through Options.
const (
	// DefaultDailyWorkload stands in for the empirical throughput when a
	// population has never cleared any work: one nominal working day.
	DefaultDailyWorkload = 8.0

	// WeeklyWorkingHours converts projected clearing days into hours.
	WeeklyWorkingHours = 40.0
)

// Options configures an overview Composer. Zero values fall back to the
// engine defaults.
type Options struct {
	Calendar             WorkingCalendar
	Now                  func() time.Time
	DefaultDailyWorkload float64
	WeeklyWorkingHours   float64
	Unplanned            UnplannedFunc
	LeadTime             LeadTimeFunc
}

// Composer assembles the full efficiency overview from one record snapshot.
// It holds only configuration: composing is pure and safe to repeat over
// the same snapshot.
type Composer struct {
	cal          WorkingCalendar
	now          func() time.Time
	defaultDaily float64
	weeklyHours  float64
	unplanned    UnplannedFunc
	leadTime     LeadTimeFunc
}

// NewComposer creates a composer with the given options.
func NewComposer(opts Options) *Composer {
	c := &Composer{
		cal:          opts.Calendar,
		now:          opts.Now,
		defaultDaily: opts.DefaultDailyWorkload,
		weeklyHours:  opts.WeeklyWorkingHours,
		unplanned:    opts.Unplanned,
		leadTime:     opts.LeadTime,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.cal == nil {
		c.cal = NewWorkweekCalendar(8, c.now)
	}
	if c.defaultDaily <= 0 {
		c.defaultDaily = DefaultDailyWorkload
	}
	if c.weeklyHours <= 0 {
		c.weeklyHours = WeeklyWorkingHours
	}
	if c.unplanned == nil {
		c.unplanned = DefaultUnplanned
	}
	if c.leadTime == nil {
		c.leadTime = DefaultLeadTime
	}
	return c
}

// Overview runs every aggregator over the snapshot and assembles the result.
// When byTester is set, the snapshot is additionally partitioned by tester
// and each partition aggregated once; records without a tester stay out of
// the partitioning.
func (c *Composer) Overview(records []domain.CaseRecord, byTester bool) domain.PlanOverview {
	out := c.compose(records)
	if byTester {
		out.Testers = c.testerOverviews(records)
	}
	return out
}

// Burndown projects the snapshot's burndown between start and end.
func (c *Composer) Burndown(records []domain.CaseRecord, start, end time.Time) map[domain.BurndownMetric]domain.BurndownSeries {
	return Burndown(records, start, end, c.now())
}

func (c *Composer) compose(records []domain.CaseRecord) domain.PlanOverview {
	// Backlog first: its throughput figure is the shared velocity baseline
	// for the overdue assessment.
	backlog := Backlog(records, c.cal, c.defaultDaily)

	return domain.PlanOverview{
		Progress: Progress(records),
		Backlog:  backlog,
		Overdue: AssessOverdue(
			records, c.cal, c.now(),
			backlog.DailyProcessedWorkload, c.defaultDaily, c.weeklyHours,
		),
		Delivery:        Delivery(records, c.cal),
		Unplanned:       c.unplanned(records),
		LeadTime:        c.leadTime(records, c.cal),
		ResultBreakdown: ResultBreakdown(records),
		ReviewBreakdown: ReviewBreakdown(records),
	}
}

func (c *Composer) testerOverviews(records []domain.CaseRecord) []domain.TesterOverview {
	groups := make(map[uuid.UUID][]domain.CaseRecord)
	order := make([]uuid.UUID, 0)

	for _, r := range records {
		if r.TesterID == nil {
			continue
		}
		id := *r.TesterID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], r)
	}

	out := make([]domain.TesterOverview, 0, len(order))
	for _, id := range order {
		out = append(out, domain.TesterOverview{
			TesterID: id,
			Overview: c.compose(groups[id]),
		})
	}
	return out
}
