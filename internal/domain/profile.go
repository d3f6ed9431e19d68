package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Residency is the immigration status of a parent.
type Residency string

const (
	ResidencyCitizen   Residency = "CITIZEN"
	ResidencyPR        Residency = "PR"
	ResidencyForeigner Residency = "FOREIGNER"
)

// Gender of the simulated child. It determines the post-16 stage branch
// and the terminal age.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// RealismTier scales discretionary cost multipliers.
type RealismTier string

const (
	TierOptimistic   RealismTier = "OPTIMISTIC"
	TierRealistic    RealismTier = "REALISTIC"
	TierConservative RealismTier = "CONSERVATIVE"
)

// Multiplier returns the discretionary-cost scale for the tier.
func (t RealismTier) Multiplier() decimal.Decimal {
	switch t {
	case TierOptimistic:
		return decimal.NewFromFloat(0.8)
	case TierConservative:
		return decimal.NewFromFloat(1.3)
	default:
		return decimal.NewFromInt(1)
	}
}

// Parent holds one parent's residency and income figures.
type Parent struct {
	Residency               Residency       `json:"residency" yaml:"residency"`
	GrossMonthlyIncome      decimal.Decimal `json:"grossMonthlyIncome" yaml:"gross_monthly_income"`
	DisposableMonthlyIncome decimal.Decimal `json:"disposableMonthlyIncome" yaml:"disposable_monthly_income"`
}

// Profile is the caller-owned description of the household and child.
// It is read-only to the simulation core for the duration of a run.
type Profile struct {
	Father Parent `json:"father" yaml:"father"`
	Mother Parent `json:"mother" yaml:"mother"`

	FamilySavings decimal.Decimal `json:"familySavings" yaml:"family_savings"`

	ChildName   string `json:"childName" yaml:"child_name"`
	ChildGender Gender `json:"childGender" yaml:"child_gender"`

	// ChildOrder is 1-based: 1 for the first child in the family.
	ChildOrder int `json:"childOrder" yaml:"child_order"`

	// ChildBornAfterCutoff selects the fixed-tier WMCR computation for
	// children born on or after the 2024 cutoff.
	ChildBornAfterCutoff bool `json:"childBornAfterCutoff" yaml:"child_born_after_cutoff"`

	// SingleIncome marks a single-income household, which qualifies for
	// spouse relief.
	SingleIncome bool `json:"singleIncome" yaml:"single_income"`

	Realism RealismTier `json:"realism" yaml:"realism"`

	// BaseYear anchors fee tables and inflation adjustment; the child is
	// born in BaseYear.
	BaseYear int `json:"baseYear" yaml:"base_year"`
}

// HouseholdGrossMonthly is the combined gross monthly income of both parents.
func (p *Profile) HouseholdGrossMonthly() decimal.Decimal {
	return p.Father.GrossMonthlyIncome.Add(p.Mother.GrossMonthlyIncome)
}

// HouseholdDisposableMonthly is the combined disposable monthly income.
func (p *Profile) HouseholdDisposableMonthly() decimal.Decimal {
	return p.Father.DisposableMonthlyIncome.Add(p.Mother.DisposableMonthlyIncome)
}

// HasCitizenOrPRParent reports whether at least one parent is a citizen or PR.
func (p *Profile) HasCitizenOrPRParent() bool {
	for _, r := range []Residency{p.Father.Residency, p.Mother.Residency} {
		if r == ResidencyCitizen || r == ResidencyPR {
			return true
		}
	}
	return false
}

// Validate rejects profiles with missing or unknown enum fields. A profile
// that fails validation must never enter a simulation session.
func (p *Profile) Validate() error {
	switch p.Father.Residency {
	case ResidencyCitizen, ResidencyPR, ResidencyForeigner:
	default:
		return fmt.Errorf("father residency %q: %w", p.Father.Residency, ErrProfileInvalid)
	}
	switch p.Mother.Residency {
	case ResidencyCitizen, ResidencyPR, ResidencyForeigner:
	default:
		return fmt.Errorf("mother residency %q: %w", p.Mother.Residency, ErrProfileInvalid)
	}
	switch p.ChildGender {
	case GenderMale, GenderFemale:
	default:
		return fmt.Errorf("child gender %q: %w", p.ChildGender, ErrProfileInvalid)
	}
	switch p.Realism {
	case TierOptimistic, TierRealistic, TierConservative:
	default:
		return fmt.Errorf("realism tier %q: %w", p.Realism, ErrProfileInvalid)
	}
	if p.ChildOrder < 1 {
		return fmt.Errorf("child order %d must be >= 1: %w", p.ChildOrder, ErrProfileInvalid)
	}
	if p.BaseYear < 1990 {
		return fmt.Errorf("base year %d: %w", p.BaseYear, ErrProfileInvalid)
	}
	if p.FamilySavings.IsNegative() {
		return fmt.Errorf("family savings must not be negative: %w", ErrProfileInvalid)
	}
	return nil
}
