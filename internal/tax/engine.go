// Package tax computes annual income tax for the household: progressive
// bracket tax per parent, capped reliefs, the parenthood rebate and the
// final personal-income-tax rebate.
package tax

import (
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/rates"
	"github.com/shopspring/decimal"
)

// Engine computes net tax payable against a set of rate tables. Monetary
// values carry fractional cents throughout; rounding happens only at
// presentation.
type Engine struct {
	cfg rates.TaxConfig
}

// NewEngine creates a tax engine over the given tables.
func NewEngine(tables *rates.Tables) *Engine {
	return &Engine{cfg: tables.Tax}
}

// ProgressiveTax walks the bracket schedule for an annual income. Bracket
// boundaries are half-open (min, max]; the lowest bracket starts inclusive
// at zero.
func (e *Engine) ProgressiveTax(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, bracket := range e.cfg.Brackets {
		if annualIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		incomeInBracket := decimal.Min(annualIncome, bracket.Max).Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			total = total.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}
	return total
}

// grossTaxFor applies the residency rule: foreigners pay the greater of the
// progressive tax and the flat non-resident rate.
func (e *Engine) grossTaxFor(parent domain.Parent) decimal.Decimal {
	annual := parent.GrossMonthlyIncome.Mul(decimal.NewFromInt(12))
	progressive := e.ProgressiveTax(annual)
	if parent.Residency == domain.ResidencyForeigner {
		flat := annual.Mul(e.cfg.NonResidentFlatRate)
		return decimal.Max(progressive, flat)
	}
	return progressive
}

// WorkingMotherRelief computes WMCR for one child. Children born on or
// after the cutoff use the fixed tier by child order; earlier children use
// a percentage of the mother's earned income, with QCR plus WMCR capped per
// child. A zero income makes the percentage form zero rather than an error.
func (e *Engine) WorkingMotherRelief(motherAnnualIncome decimal.Decimal, childOrder int, bornAfterCutoff bool) decimal.Decimal {
	if bornAfterCutoff {
		return e.cfg.WMCRFixed(childOrder)
	}
	if motherAnnualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	relief := motherAnnualIncome.Mul(e.cfg.WMCRPercent(childOrder))
	cap := e.cfg.WMCRCombinedCapPerChild.Sub(e.cfg.QualifyingChildRelief)
	if cap.IsNegative() {
		cap = decimal.Zero
	}
	return decimal.Min(relief, cap)
}

// ComputeNetTax runs the full annual computation for the household.
func (e *Engine) ComputeNetTax(profile *domain.Profile, childOrder int, bornAfterCutoff bool) domain.TaxResult {
	result := domain.TaxResult{
		GrossTaxFather: e.grossTaxFor(profile.Father),
		GrossTaxMother: e.grossTaxFor(profile.Mother),
	}

	motherAnnual := profile.Mother.GrossMonthlyIncome.Mul(decimal.NewFromInt(12))

	reliefs := domain.ReliefBreakdown{
		QualifyingChild:  e.cfg.QualifyingChildRelief,
		WorkingMother:    e.WorkingMotherRelief(motherAnnual, childOrder, bornAfterCutoff),
		ParenthoodRebate: e.cfg.ParenthoodRebate(childOrder),
	}
	if profile.SingleIncome {
		reliefs.Spouse = e.cfg.SpouseRelief
	}
	result.Reliefs = reliefs

	totalRelief := reliefs.Spouse.
		Add(reliefs.QualifyingChild).
		Add(reliefs.WorkingMother).
		Add(reliefs.ParenthoodRebate)
	result.CappedRelief = decimal.Min(totalRelief, e.cfg.TotalReliefCap)

	netBeforeRebate := result.GrossTax().Sub(result.CappedRelief)
	if netBeforeRebate.IsNegative() {
		netBeforeRebate = decimal.Zero
	}

	result.Rebate = decimal.Min(netBeforeRebate.Mul(e.cfg.PITRebateRate), e.cfg.PITRebateCap)
	result.NetTaxPayable = netBeforeRebate.Sub(result.Rebate)
	if result.NetTaxPayable.IsNegative() {
		result.NetTaxPayable = decimal.Zero
	}

	householdAnnual := profile.HouseholdGrossMonthly().Mul(decimal.NewFromInt(12))
	if householdAnnual.GreaterThan(decimal.Zero) {
		result.EffectiveRate = result.NetTaxPayable.Div(householdAnnual)
	}
	return result
}
