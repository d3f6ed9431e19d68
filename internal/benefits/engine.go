// Package benefits evaluates eligibility and values for government benefit
// schemes: income-tested childcare subsidies, fixed grants by child order,
// percentage-of-income reliefs and a typed formula extension point.
package benefits

import (
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/rates"
	"github.com/shopspring/decimal"
)

// SchemeKind is a closed enumeration of value computations. Adding a new
// scheme kind means extending the switch in Value, checked at compile time
// rather than falling through on an unknown string.
type SchemeKind int

const (
	KindTieredSubsidy SchemeKind = iota
	KindFixedByChildOrder
	KindPercentOfIncomeCapped
	KindFormula
)

// TieredParams drives an income-tested monthly subsidy: a flat basic amount
// plus an additional tier by household income. Tier ceilings are inclusive.
type TieredParams struct {
	Basic decimal.Decimal
	Tiers []rates.SubsidyTier
}

// FixedParams is a fixed amount indexed by child order.
type FixedParams struct {
	ByOrder []decimal.Decimal
}

// PercentParams is a percentage of the mother's earned income, capped.
type PercentParams struct {
	Percent decimal.Decimal
	Cap     decimal.Decimal
}

// Scheme is a named benefit with eligibility criteria and exactly one kind
// of value computation, selected by Kind.
type Scheme struct {
	Name string
	Kind SchemeKind

	// Eligibility criteria, ANDed. Zero values disable a criterion.
	RequireCitizenOrPR bool
	IncomeCeiling      decimal.Decimal
	Stages             []domain.GrowthStage

	Tiered  *TieredParams
	Fixed   *FixedParams
	Percent *PercentParams
	Formula Expr
}

// Engine evaluates schemes against a profile.
type Engine struct {
	cfg rates.BenefitConfig
	tax rates.TaxConfig
}

// NewEngine creates a benefits engine over the given tables.
func NewEngine(tables *rates.Tables) *Engine {
	return &Engine{cfg: tables.Benefits, tax: tables.Tax}
}

// Eligible ANDs the scheme's criteria: citizenship-or-PR of either parent,
// the household income ceiling, and child-age membership in the scheme's
// applicable growth stages.
func (e *Engine) Eligible(scheme Scheme, profile *domain.Profile, childAgeMonths int) bool {
	if scheme.RequireCitizenOrPR && !profile.HasCitizenOrPRParent() {
		return false
	}
	if !scheme.IncomeCeiling.IsZero() &&
		profile.HouseholdGrossMonthly().GreaterThan(scheme.IncomeCeiling) {
		return false
	}
	if len(scheme.Stages) > 0 {
		stage := domain.StageAt(childAgeMonths, profile.ChildGender, "")
		found := false
		for _, s := range scheme.Stages {
			if s == stage {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Value dispatches on the scheme kind. An unconfigured or unknown kind
// values to zero rather than failing the run.
func (e *Engine) Value(scheme Scheme, profile *domain.Profile) decimal.Decimal {
	switch scheme.Kind {
	case KindTieredSubsidy:
		if scheme.Tiered == nil {
			return decimal.Zero
		}
		return scheme.Tiered.Basic.Add(additionalTier(scheme.Tiered.Tiers, profile.HouseholdGrossMonthly()))
	case KindFixedByChildOrder:
		if scheme.Fixed == nil {
			return decimal.Zero
		}
		return fixedByOrder(scheme.Fixed.ByOrder, profile.ChildOrder)
	case KindPercentOfIncomeCapped:
		if scheme.Percent == nil {
			return decimal.Zero
		}
		income := profile.Mother.GrossMonthlyIncome.Mul(decimal.NewFromInt(12))
		if income.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
		return decimal.Min(income.Mul(scheme.Percent.Percent), scheme.Percent.Cap)
	case KindFormula:
		if scheme.Formula == nil {
			return decimal.Zero
		}
		return scheme.Formula.Eval(Env{
			MotherEarnedIncome: profile.Mother.GrossMonthlyIncome.Mul(decimal.NewFromInt(12)),
			HouseholdIncome:    profile.HouseholdGrossMonthly().Mul(decimal.NewFromInt(12)),
			ChildOrder:         profile.ChildOrder,
		})
	}
	return decimal.Zero
}

// additionalTier walks an income-tested table. Ceilings are inclusive: a
// household earning exactly a tier's ceiling receives that tier's amount.
func additionalTier(tiers []rates.SubsidyTier, income decimal.Decimal) decimal.Decimal {
	for _, tier := range tiers {
		if income.LessThanOrEqual(tier.Ceiling) {
			return tier.Amount
		}
	}
	return decimal.Zero
}

func fixedByOrder(table []decimal.Decimal, order int) decimal.Decimal {
	if len(table) == 0 || order < 1 {
		return decimal.Zero
	}
	if order > len(table) {
		order = len(table)
	}
	return table[order-1]
}
