// Package rates holds the static, versioned lookup data the finance core
// computes against: tax brackets, relief amounts, benefit tiers, CPI series
// and education fee tables. Tables are constructed with 2025 defaults and
// may be overridden from a YAML file.
package rates

import (
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxBracket is one progressive bracket. Boundaries are half-open (Min, Max]
// except the lowest bracket, which starts inclusive at zero.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min"`
	Max  decimal.Decimal `yaml:"max"`
	Rate decimal.Decimal `yaml:"rate"`
}

// TaxConfig carries the bracket schedule, relief amounts and rebate rates.
type TaxConfig struct {
	Brackets []TaxBracket `yaml:"brackets"`

	// NonResidentFlatRate applies to FOREIGNER parents: gross tax is the
	// greater of the progressive tax and this flat rate on income.
	NonResidentFlatRate decimal.Decimal `yaml:"non_resident_flat_rate"`

	SpouseRelief          decimal.Decimal `yaml:"spouse_relief"`
	QualifyingChildRelief decimal.Decimal `yaml:"qualifying_child_relief"`

	// WMCRFixedByOrder is the post-cutoff fixed tier, indexed by child
	// order capped at the last entry.
	WMCRFixedByOrder []decimal.Decimal `yaml:"wmcr_fixed_by_order"`

	// WMCRPercentByOrder is the pre-cutoff percentage of the mother's
	// earned income, indexed the same way.
	WMCRPercentByOrder []decimal.Decimal `yaml:"wmcr_percent_by_order"`

	// WMCRCombinedCapPerChild caps QCR plus WMCR for one child.
	WMCRCombinedCapPerChild decimal.Decimal `yaml:"wmcr_combined_cap_per_child"`

	ParenthoodRebateByOrder []decimal.Decimal `yaml:"parenthood_rebate_by_order"`

	TotalReliefCap decimal.Decimal `yaml:"total_relief_cap"`

	PITRebateRate decimal.Decimal `yaml:"pit_rebate_rate"`
	PITRebateCap  decimal.Decimal `yaml:"pit_rebate_cap"`
}

// SubsidyTier is one row of an income-tested subsidy table. Ceiling is
// inclusive: a household earning exactly Ceiling qualifies for Amount.
type SubsidyTier struct {
	Ceiling decimal.Decimal `yaml:"ceiling"`
	Amount  decimal.Decimal `yaml:"amount"`
}

// BenefitConfig carries the benefit scheme parameters.
type BenefitConfig struct {
	ChildcareBasicSubsidy    decimal.Decimal `yaml:"childcare_basic_subsidy"`
	InfantCareBasicSubsidy   decimal.Decimal `yaml:"infant_care_basic_subsidy"`
	ChildcareAdditionalTiers []SubsidyTier   `yaml:"childcare_additional_tiers"`

	// SubsidyIncomeCeiling gates eligibility for the additional subsidy.
	SubsidyIncomeCeiling decimal.Decimal `yaml:"subsidy_income_ceiling"`

	BabyBonusByOrder     []decimal.Decimal `yaml:"baby_bonus_by_order"`
	CDAFirstStepGrant    decimal.Decimal   `yaml:"cda_first_step_grant"`
	CDACoMatchCapByOrder []decimal.Decimal `yaml:"cda_co_match_cap_by_order"`
	MediSaveNewbornGrant decimal.Decimal   `yaml:"medisave_newborn_grant"`

	EdusavePrimaryAnnual   decimal.Decimal `yaml:"edusave_primary_annual"`
	EdusaveSecondaryAnnual decimal.Decimal `yaml:"edusave_secondary_annual"`

	NSMonthlyAllowance decimal.Decimal `yaml:"ns_monthly_allowance"`
}

// StageCost is the recurring monthly outlay for one growth stage at the
// table's reference year, split into school fees and living costs. Living
// costs are discretionary and scale with the profile's realism tier.
type StageCost struct {
	MonthlyFee    decimal.Decimal `yaml:"monthly_fee"`
	MonthlyLiving decimal.Decimal `yaml:"monthly_living"`
}

// FeeConfig carries education fee tables keyed by stage and by
// post-secondary path, all at ReferenceYear dollars.
type FeeConfig struct {
	ReferenceYear int                              `yaml:"reference_year"`
	ByStage       map[domain.GrowthStage]StageCost `yaml:"by_stage"`

	// Pre-kindergarten care fees, keyed by age rather than stage.
	InfantCareMonthlyFee decimal.Decimal `yaml:"infant_care_monthly_fee"`
	ChildcareMonthlyFee  decimal.Decimal `yaml:"childcare_monthly_fee"`

	// PostSecondaryAnnualFee is the yearly fee per chosen path.
	PostSecondaryAnnualFee map[domain.PostSecondaryPath]decimal.Decimal `yaml:"post_secondary_annual_fee"`

	// UniversityTotalFee is the full-course fee per university option label.
	UniversityTotalFee map[string]decimal.Decimal `yaml:"university_total_fee"`
}

// Tables aggregates every lookup table the engines need.
type Tables struct {
	Tax      TaxConfig     `yaml:"tax"`
	Benefits BenefitConfig `yaml:"benefits"`
	Fees     FeeConfig     `yaml:"fees"`
	CPI      CPITable      `yaml:"cpi"`
}

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// NewTables2025 builds the embedded default tables for the 2025 regime.
func NewTables2025() *Tables {
	return &Tables{
		Tax: TaxConfig{
			Brackets: []TaxBracket{
				{decimal.Zero, d(20000), decimal.Zero},
				{d(20000), d(30000), d(0.02)},
				{d(30000), d(40000), d(0.035)},
				{d(40000), d(80000), d(0.07)},
				{d(80000), d(120000), d(0.115)},
				{d(120000), d(160000), d(0.15)},
				{d(160000), d(200000), d(0.18)},
				{d(200000), d(240000), d(0.19)},
				{d(240000), d(280000), d(0.195)},
				{d(280000), d(320000), d(0.20)},
				{d(320000), d(500000), d(0.22)},
				{d(500000), d(1000000), d(0.23)},
				{d(1000000), d(999999999), d(0.24)},
			},
			NonResidentFlatRate:     d(0.15),
			SpouseRelief:            d(2000),
			QualifyingChildRelief:   d(4000),
			WMCRFixedByOrder:        []decimal.Decimal{d(8000), d(10000), d(12000)},
			WMCRPercentByOrder:      []decimal.Decimal{d(0.15), d(0.20), d(0.25)},
			WMCRCombinedCapPerChild: d(50000),
			ParenthoodRebateByOrder: []decimal.Decimal{d(5000), d(10000), d(20000)},
			TotalReliefCap:          d(80000),
			PITRebateRate:           d(0.60),
			PITRebateCap:            d(200),
		},
		Benefits: BenefitConfig{
			ChildcareBasicSubsidy:  d(300),
			InfantCareBasicSubsidy: d(600),
			ChildcareAdditionalTiers: []SubsidyTier{
				{d(3000), d(467)},
				{d(4500), d(440)},
				{d(6000), d(340)},
				{d(7500), d(260)},
				{d(9000), d(165)},
				{d(10500), d(115)},
				{d(12000), d(80)},
			},
			SubsidyIncomeCeiling:   d(12000),
			BabyBonusByOrder:       []decimal.Decimal{d(11000), d(11000), d(13000)},
			CDAFirstStepGrant:      d(5000),
			CDACoMatchCapByOrder:   []decimal.Decimal{d(4000), d(7000), d(9000)},
			MediSaveNewbornGrant:   d(4000),
			EdusavePrimaryAnnual:   d(230),
			EdusaveSecondaryAnnual: d(290),
			NSMonthlyAllowance:     d(755),
		},
		Fees: FeeConfig{
			ReferenceYear:        2025,
			InfantCareMonthlyFee: d(1360),
			ChildcareMonthlyFee:  d(780),
			ByStage: map[domain.GrowthStage]StageCost{
				domain.StageNewborn:         {MonthlyFee: d(0), MonthlyLiving: d(650)},
				domain.StageKindergarten:    {MonthlyFee: d(680), MonthlyLiving: d(550)},
				domain.StagePrimary:         {MonthlyFee: d(13), MonthlyLiving: d(600)},
				domain.StageSecondary:       {MonthlyFee: d(25), MonthlyLiving: d(700)},
				domain.StagePostSecondary:   {MonthlyFee: d(33), MonthlyLiving: d(750)},
				domain.StageNationalService: {MonthlyFee: d(0), MonthlyLiving: d(250)},
				domain.StageUniversity:      {MonthlyFee: d(0), MonthlyLiving: d(800)},
				domain.StageAdult:           {},
			},
			PostSecondaryAnnualFee: map[domain.PostSecondaryPath]decimal.Decimal{
				domain.PathJuniorCollege: d(396),
				domain.PathPolytechnic:   d(3100),
				domain.PathITE:           d(590),
				domain.PathWork:          decimal.Zero,
			},
			UniversityTotalFee: map[string]decimal.Decimal{
				"local":    d(33000),
				"overseas": d(160000),
			},
		},
		CPI: NewCPITable2025(),
	}
}

// indexByOrder returns the value for a 1-based child order, clamping to the
// last tier for orders beyond the table.
func indexByOrder(table []decimal.Decimal, order int) decimal.Decimal {
	if len(table) == 0 || order < 1 {
		return decimal.Zero
	}
	if order > len(table) {
		order = len(table)
	}
	return table[order-1]
}

// ParenthoodRebate returns the one-time rebate for a child order.
func (t *TaxConfig) ParenthoodRebate(order int) decimal.Decimal {
	return indexByOrder(t.ParenthoodRebateByOrder, order)
}

// WMCRFixed returns the post-cutoff fixed-tier WMCR for a child order.
func (t *TaxConfig) WMCRFixed(order int) decimal.Decimal {
	return indexByOrder(t.WMCRFixedByOrder, order)
}

// WMCRPercent returns the pre-cutoff income percentage for a child order.
func (t *TaxConfig) WMCRPercent(order int) decimal.Decimal {
	return indexByOrder(t.WMCRPercentByOrder, order)
}

// BabyBonus returns the cash gift for a child order.
func (b *BenefitConfig) BabyBonus(order int) decimal.Decimal {
	return indexByOrder(b.BabyBonusByOrder, order)
}

// CDACoMatchCap returns the co-matching cap for a child order.
func (b *BenefitConfig) CDACoMatchCap(order int) decimal.Decimal {
	return indexByOrder(b.CDACoMatchCapByOrder, order)
}
