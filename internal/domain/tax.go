package domain

import "github.com/shopspring/decimal"

// ReliefBreakdown itemizes the reliefs applied to one tax computation.
type ReliefBreakdown struct {
	Spouse           decimal.Decimal `json:"spouse"`
	QualifyingChild  decimal.Decimal `json:"qualifyingChild"`
	WorkingMother    decimal.Decimal `json:"workingMother"`
	ParenthoodRebate decimal.Decimal `json:"parenthoodRebate"`
}

// TaxResult is the outcome of one annual tax computation. It is recomputed
// fresh at each tax event and never persisted inside the core.
type TaxResult struct {
	GrossTaxFather decimal.Decimal `json:"grossTaxFather"`
	GrossTaxMother decimal.Decimal `json:"grossTaxMother"`

	Reliefs       ReliefBreakdown `json:"reliefs"`
	CappedRelief  decimal.Decimal `json:"cappedRelief"`
	Rebate        decimal.Decimal `json:"rebate"`
	NetTaxPayable decimal.Decimal `json:"netTaxPayable"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
}

// GrossTax is the combined gross tax of both parents before reliefs.
func (r *TaxResult) GrossTax() decimal.Decimal {
	return r.GrossTaxFather.Add(r.GrossTaxMother)
}

// AvoidedTax is the reporting-only difference between gross and net tax.
func (r *TaxResult) AvoidedTax() decimal.Decimal {
	avoided := r.GrossTax().Sub(r.NetTaxPayable)
	if avoided.IsNegative() {
		return decimal.Zero
	}
	return avoided
}
