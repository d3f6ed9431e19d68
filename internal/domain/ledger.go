package domain

import "github.com/shopspring/decimal"

// RunStatus is the driver's state-machine state.
type RunStatus string

const (
	StatusStopped RunStatus = "STOPPED"
	StatusRunning RunStatus = "RUNNING"
	StatusPaused  RunStatus = "PAUSED"
)

// RunResult describes how a completed session ended.
type RunResult string

const (
	ResultNone             RunResult = ""
	ResultRanOutOfMoney    RunResult = "ranOutOfMoney"
	ResultReachedAdulthood RunResult = "reachedAdulthood"
	ResultManuallyEnded    RunResult = "manuallyEnded"
)

// DecisionRecord logs one resolved event for reporting.
type DecisionRecord struct {
	AgeMonths  int             `json:"ageMonths"`
	EventTitle string          `json:"eventTitle"`
	Option     string          `json:"option,omitempty"`
	Cost       decimal.Decimal `json:"cost"`
	Benefit    decimal.Decimal `json:"benefit"`
}

// LedgerSnapshot is a point-in-time copy of the household financial record.
// Invariant: TotalExpenditure equals the sum over PerCategory and the sum
// over PerStage.
type LedgerSnapshot struct {
	HouseholdSavings decimal.Decimal `json:"householdSavings"`
	TotalExpenditure decimal.Decimal `json:"totalExpenditure"`
	TotalBenefits    decimal.Decimal `json:"totalBenefits"`

	PerCategory map[CostCategory]decimal.Decimal `json:"perCategory"`
	PerStage    map[GrowthStage]decimal.Decimal  `json:"perStage"`

	DecisionsLog []DecisionRecord `json:"decisionsLog"`

	AgeMonths int       `json:"ageMonths"`
	Result    RunResult `json:"result"`
}

// CategorySum totals the per-category breakdown.
func (s *LedgerSnapshot) CategorySum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.PerCategory {
		total = total.Add(v)
	}
	return total
}

// StageSum totals the per-stage breakdown.
func (s *LedgerSnapshot) StageSum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.PerStage {
		total = total.Add(v)
	}
	return total
}
