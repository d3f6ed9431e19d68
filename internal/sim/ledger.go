package sim

import (
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/shopspring/decimal"
)

// Ledger is the mutable household financial record. It is owned and
// mutated exclusively by the Driver; everything else sees snapshots.
type Ledger struct {
	savings       decimal.Decimal
	totalExpense  decimal.Decimal
	totalBenefits decimal.Decimal
	perCategory   map[domain.CostCategory]decimal.Decimal
	perStage      map[domain.GrowthStage]decimal.Decimal
	decisionsLog  []domain.DecisionRecord
}

// NewLedger starts a ledger at the household's opening savings.
func NewLedger(openingSavings decimal.Decimal) *Ledger {
	return &Ledger{
		savings:     openingSavings,
		perCategory: make(map[domain.CostCategory]decimal.Decimal),
		perStage:    make(map[domain.GrowthStage]decimal.Decimal),
	}
}

// applyCost debits savings and records the expenditure under its category
// and stage. It returns true when savings hit the floor: the debit is
// capped so savings land at exactly zero, never below.
func (l *Ledger) applyCost(category domain.CostCategory, stage domain.GrowthStage, amount decimal.Decimal) bool {
	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}
	l.totalExpense = l.totalExpense.Add(amount)
	l.perCategory[category] = l.perCategory[category].Add(amount)
	l.perStage[stage] = l.perStage[stage].Add(amount)

	l.savings = l.savings.Sub(amount)
	if l.savings.LessThanOrEqual(decimal.Zero) {
		l.savings = decimal.Zero
		return true
	}
	return false
}

// applyBenefit credits savings with a received transfer.
func (l *Ledger) applyBenefit(amount decimal.Decimal) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}
	l.totalBenefits = l.totalBenefits.Add(amount)
	l.savings = l.savings.Add(amount)
}

// applyIncome credits monthly disposable income.
func (l *Ledger) applyIncome(amount decimal.Decimal) {
	if amount.GreaterThan(decimal.Zero) {
		l.savings = l.savings.Add(amount)
	}
}

func (l *Ledger) record(rec domain.DecisionRecord) {
	l.decisionsLog = append(l.decisionsLog, rec)
}

// snapshot copies the ledger into an immutable view.
func (l *Ledger) snapshot() domain.LedgerSnapshot {
	perCategory := make(map[domain.CostCategory]decimal.Decimal, len(l.perCategory))
	for k, v := range l.perCategory {
		perCategory[k] = v
	}
	perStage := make(map[domain.GrowthStage]decimal.Decimal, len(l.perStage))
	for k, v := range l.perStage {
		perStage[k] = v
	}
	log := make([]domain.DecisionRecord, len(l.decisionsLog))
	copy(log, l.decisionsLog)

	return domain.LedgerSnapshot{
		HouseholdSavings: l.savings,
		TotalExpenditure: l.totalExpense,
		TotalBenefits:    l.totalBenefits,
		PerCategory:      perCategory,
		PerStage:         perStage,
		DecisionsLog:     log,
	}
}
