package events

import (
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthlyOutlay is the recurring cost of one simulated month, split so the
// ledger can categorize it. Fee is net of subsidy; Living is scaled by the
// profile's realism tier; Allowance is income attributable to the child
// (national service pay) that offsets the month's cost.
type MonthlyOutlay struct {
	Fee       decimal.Decimal
	Living    decimal.Decimal
	Subsidy   decimal.Decimal
	Allowance decimal.Decimal
}

// NetFee is the education fee after subsidy, floored at zero.
func (m MonthlyOutlay) NetFee() decimal.Decimal {
	net := m.Fee.Sub(m.Subsidy)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// Total is the month's net cost. It can be negative during national
// service, when the allowance exceeds living costs.
func (m MonthlyOutlay) Total() decimal.Decimal {
	return m.NetFee().Add(m.Living).Sub(m.Allowance)
}

// MonthlyCost computes the non-discrete cost of the month at the given age:
// the age-appropriate care or school fee net of the subsidy the benefits
// engine grants, plus realism-scaled living costs, projected to the
// calendar year of the month.
func (g *Generator) MonthlyCost(ageMonths int, profile *domain.Profile, decisions Decisions) MonthlyOutlay {
	stage := domain.StageAt(ageMonths, profile.ChildGender, decisions.Path())
	if stage == domain.StageAdult {
		return MonthlyOutlay{}
	}

	var fee decimal.Decimal
	switch {
	case ageMonths < 2:
		fee = decimal.Zero
	case ageMonths < 18:
		if !decisions.homeCare(domain.ChoiceKeyInfantCare) {
			fee = g.fees.InfantCareMonthlyFee
		}
	case ageMonths < domain.MonthsKindergarten:
		if !decisions.homeCare(domain.ChoiceKeyChildcare) {
			fee = g.fees.ChildcareMonthlyFee
		}
	case stage == domain.StagePostSecondary:
		fee = g.fees.PostSecondaryAnnualFee[decisions.Path()].Div(decimal.NewFromInt(12))
	case stage == domain.StageKindergarten && decisions.homeCare(domain.ChoiceKeyKindergarten):
		fee = decimal.Zero
	default:
		fee = g.fees.ByStage[stage].MonthlyFee
	}

	living := g.fees.ByStage[stage].MonthlyLiving.Mul(profile.Realism.Multiplier())

	outlay := MonthlyOutlay{
		Fee:    g.project(fee, profile, ageMonths),
		Living: g.project(living, profile, ageMonths),
	}
	if outlay.Fee.IsPositive() {
		outlay.Subsidy = g.benefits.MonthlySubsidy(profile, ageMonths)
	}
	if stage == domain.StageNationalService {
		outlay.Allowance = g.benefit.NSMonthlyAllowance
	}
	return outlay
}
