package domain

import "github.com/google/uuid"

// RiskLevel classifies how soon an overdue backlog is projected to clear.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// DeliveryWindow names the fixed recent windows a delivery breakdown covers.
type DeliveryWindow string

const (
	WindowToday     DeliveryWindow = "TODAY"
	WindowLastWeek  DeliveryWindow = "LAST_WEEK"
	WindowLastMonth DeliveryWindow = "LAST_MONTH"
)

// DeliveryWindows lists the windows in ascending width.
var DeliveryWindows = []DeliveryWindow{WindowToday, WindowLastWeek, WindowLastMonth}

// BurndownMetric discriminates the two parallel burndown series.
type BurndownMetric string

const (
	BurndownNum      BurndownMetric = "NUM"
	BurndownWorkload BurndownMetric = "WORKLOAD"
)

// ProgressCount is the total-versus-completed snapshot of a record set.
type ProgressCount struct {
	TotalNum              int     `json:"totalNum"`
	CompletedNum          int     `json:"completedNum"`
	CompletedRate         float64 `json:"completedRate"`
	EvalWorkload          float64 `json:"evalWorkload"`
	CompletedWorkload     float64 `json:"completedWorkload"`
	CompletedWorkloadRate float64 `json:"completedWorkloadRate"`
}

// BacklogCount sizes the unfinished work and carries the empirical daily
// throughput used as the velocity baseline across the whole overview.
type BacklogCount struct {
	BacklogNum             int     `json:"backlogNum"`
	BacklogRate            float64 `json:"backlogRate"`
	BacklogWorkload        float64 `json:"backlogWorkload"`
	BacklogWorkloadRate    float64 `json:"backlogWorkloadRate"`
	DailyProcessedNum      float64 `json:"dailyProcessedNum"`
	DailyProcessedWorkload float64 `json:"dailyProcessedWorkload"`
	ClearanceDays          float64 `json:"clearanceDays"`
}

// OverdueAssessment quantifies overdue work and its projected clearing risk.
type OverdueAssessment struct {
	OverdueNum          int       `json:"overdueNum"`
	OverdueRate         float64   `json:"overdueRate"`
	OverdueWorkload     float64   `json:"overdueWorkload"`
	OverdueWorkloadRate float64   `json:"overdueWorkloadRate"`
	OverdueHours        float64   `json:"overdueHours"`
	ProcessingHours     float64   `json:"processingHours"`
	RiskLevel           RiskLevel `json:"riskLevel"`
}

// DeliveryCount reports throughput resolved inside one recent window,
// normalized against the full population rather than the window itself.
type DeliveryCount struct {
	CompletedNum        int     `json:"completedNum"`
	CompletedRate       float64 `json:"completedRate"`
	CompletedWorkload   float64 `json:"completedWorkload"`
	SavingWorkload      float64 `json:"savingWorkload"`
	OverdueNum          int     `json:"overdueNum"`
	OverdueRate         float64 `json:"overdueRate"`
	OverdueWorkload     float64 `json:"overdueWorkload"`
	OverdueWorkloadRate float64 `json:"overdueWorkloadRate"`
}

// UnplannedCount sizes work that entered the plan without a deadline.
type UnplannedCount struct {
	UnplannedNum      int     `json:"unplannedNum"`
	UnplannedRate     float64 `json:"unplannedRate"`
	UnplannedWorkload float64 `json:"unplannedWorkload"`
}

// LeadTimeCount summarizes creation-to-completion working time.
type LeadTimeCount struct {
	SampleNum    int     `json:"sampleNum"`
	AvgLeadHours float64 `json:"avgLeadHours"`
	MaxLeadHours float64 `json:"maxLeadHours"`
}

// BurndownPoint is one day on a burndown line.
type BurndownPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BurndownSeries pairs the ideal line with the actual remaining line.
type BurndownSeries struct {
	Expected  []BurndownPoint `json:"expected"`
	Remaining []BurndownPoint `json:"remaining"`
}

// TesterOverview is one tester's slice of a plan overview.
type TesterOverview struct {
	TesterID uuid.UUID    `json:"testerId"`
	Overview PlanOverview `json:"overview"`
}

// PlanOverview is the aggregate efficiency result for one record snapshot.
// Every field is populated on every invocation; an empty snapshot yields a
// fully-formed zero-valued overview.
type PlanOverview struct {
	Progress        ProgressCount                    `json:"progress"`
	Backlog         BacklogCount                     `json:"backlog"`
	Overdue         OverdueAssessment                `json:"overdue"`
	Delivery        map[DeliveryWindow]DeliveryCount `json:"delivery"`
	Unplanned       UnplannedCount                   `json:"unplanned"`
	LeadTime        LeadTimeCount                    `json:"leadTime"`
	ResultBreakdown map[TestResult]int               `json:"resultBreakdown"`
	ReviewBreakdown map[ReviewStatus]int             `json:"reviewBreakdown"`

	// Testers holds per-tester overviews when a partitioned overview was
	// requested. Nesting stops here.
	Testers []TesterOverview `json:"testers,omitempty"`
}
