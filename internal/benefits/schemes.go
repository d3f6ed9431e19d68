package benefits

import (
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/shopspring/decimal"
)

// Named scheme constructors. Each builds a Scheme from the engine's rate
// tables so callers never hand-assemble parameters.

// ChildcareSubsidy is the income-tested monthly childcare subsidy: a basic
// amount plus an additional tier by household income.
func (e *Engine) ChildcareSubsidy() Scheme {
	return Scheme{
		Name:               "childcare-subsidy",
		Kind:               KindTieredSubsidy,
		RequireCitizenOrPR: true,
		IncomeCeiling:      e.cfg.SubsidyIncomeCeiling,
		Stages: []domain.GrowthStage{
			domain.StageNewborn, domain.StageKindergarten,
		},
		Tiered: &TieredParams{
			Basic: e.cfg.ChildcareBasicSubsidy,
			Tiers: e.cfg.ChildcareAdditionalTiers,
		},
	}
}

// InfantCareSubsidy covers the months before childcare enrollment.
func (e *Engine) InfantCareSubsidy() Scheme {
	return Scheme{
		Name:               "infant-care-subsidy",
		Kind:               KindTieredSubsidy,
		RequireCitizenOrPR: true,
		IncomeCeiling:      e.cfg.SubsidyIncomeCeiling,
		Stages:             []domain.GrowthStage{domain.StageNewborn},
		Tiered: &TieredParams{
			Basic: e.cfg.InfantCareBasicSubsidy,
			Tiers: e.cfg.ChildcareAdditionalTiers,
		},
	}
}

// BabyBonus is the one-time cash gift at birth.
func (e *Engine) BabyBonus() Scheme {
	return Scheme{
		Name:               "baby-bonus",
		Kind:               KindFixedByChildOrder,
		RequireCitizenOrPR: true,
		Fixed:              &FixedParams{ByOrder: e.cfg.BabyBonusByOrder},
	}
}

// CDAGrant is the Child Development Account First Step grant plus the
// co-matching cap for the child order, treated as the account's expected
// government contribution.
func (e *Engine) CDAGrant() Scheme {
	byOrder := make([]decimal.Decimal, len(e.cfg.CDACoMatchCapByOrder))
	for i, cap := range e.cfg.CDACoMatchCapByOrder {
		byOrder[i] = e.cfg.CDAFirstStepGrant.Add(cap)
	}
	return Scheme{
		Name:               "cda-grant",
		Kind:               KindFixedByChildOrder,
		RequireCitizenOrPR: true,
		Fixed:              &FixedParams{ByOrder: byOrder},
	}
}

// MediSaveGrant is the newborn MediSave grant.
func (e *Engine) MediSaveGrant() Scheme {
	one := e.cfg.MediSaveNewbornGrant
	return Scheme{
		Name:               "medisave-grant",
		Kind:               KindFixedByChildOrder,
		RequireCitizenOrPR: true,
		Fixed:              &FixedParams{ByOrder: []decimal.Decimal{one}},
	}
}

// EdusavePrimary is the annual Edusave contribution during primary school.
func (e *Engine) EdusavePrimary() Scheme {
	return Scheme{
		Name:               "edusave-primary",
		Kind:               KindFixedByChildOrder,
		RequireCitizenOrPR: true,
		Stages:             []domain.GrowthStage{domain.StagePrimary},
		Fixed:              &FixedParams{ByOrder: []decimal.Decimal{e.cfg.EdusavePrimaryAnnual}},
	}
}

// EdusaveSecondary is the annual Edusave contribution during secondary school.
func (e *Engine) EdusaveSecondary() Scheme {
	return Scheme{
		Name:               "edusave-secondary",
		Kind:               KindFixedByChildOrder,
		RequireCitizenOrPR: true,
		Stages:             []domain.GrowthStage{domain.StageSecondary},
		Fixed:              &FixedParams{ByOrder: []decimal.Decimal{e.cfg.EdusaveSecondaryAnnual}},
	}
}

// LegacyWorkingMotherRelief is the pre-cutoff working mother's child relief:
// a child-order percentage of the mother's earned income, capped at the
// combined per-child relief ceiling from the tax tables.
func (e *Engine) LegacyWorkingMotherRelief(childOrder int) Scheme {
	return Scheme{
		Name: "legacy-wmcr",
		Kind: KindPercentOfIncomeCapped,
		Percent: &PercentParams{
			Percent: e.tax.WMCRPercent(childOrder),
			Cap:     e.tax.WMCRCombinedCapPerChild,
		},
	}
}

// MonthlySubsidy returns the subsidy that nets against the current stage's
// monthly fee: infant care before 18 months, childcare from 18 months until
// primary school, zero elsewhere or when ineligible.
func (e *Engine) MonthlySubsidy(profile *domain.Profile, ageMonths int) decimal.Decimal {
	var scheme Scheme
	switch {
	case ageMonths < 2:
		return decimal.Zero
	case ageMonths < 18:
		scheme = e.InfantCareSubsidy()
	case ageMonths < domain.MonthsPrimary:
		scheme = e.ChildcareSubsidy()
	default:
		return decimal.Zero
	}
	if !e.Eligible(scheme, profile, ageMonths) {
		return decimal.Zero
	}
	return e.Value(scheme, profile)
}
