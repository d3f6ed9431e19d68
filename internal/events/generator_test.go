package events

import (
	"testing"

	"github.com/kidcost/kidcost/internal/benefits"
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/inflation"
	"github.com/kidcost/kidcost/internal/rates"
	"github.com/kidcost/kidcost/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *Generator {
	tables := rates.NewTables2025()
	return NewGenerator(
		tax.NewEngine(tables),
		benefits.NewEngine(tables),
		inflation.New(rates.NewCPITable2025()),
		tables,
	)
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		Father: domain.Parent{
			Residency:          domain.ResidencyCitizen,
			GrossMonthlyIncome: decimal.NewFromInt(6000),
		},
		Mother: domain.Parent{
			Residency:          domain.ResidencyCitizen,
			GrossMonthlyIncome: decimal.NewFromInt(4500),
		},
		FamilySavings: decimal.NewFromInt(80000),
		ChildName:     "Wei",
		ChildGender:   domain.GenderFemale,
		ChildOrder:    1,
		Realism:       domain.TierRealistic,
		BaseYear:      2025,
	}
}

func noDecisions() Decisions {
	return Decisions{Choices: make(map[string]string)}
}

func TestBirthEventCarriesGrants(t *testing.T) {
	g := testGenerator()
	evs := g.Generate(0, testProfile(), noDecisions())
	require.Len(t, evs, 1)

	ev := evs[0]
	assert.True(t, ev.RequiresDecision)
	assert.Equal(t, domain.CategoryMedical, ev.Category)
	assert.NotEmpty(t, ev.ID)

	// Baby bonus, CDA and MediSave for an eligible first child.
	require.Len(t, ev.BenefitItems, 3)
	total := ev.TotalBenefit()
	want := decimal.NewFromInt(11000 + 9000 + 4000)
	assert.True(t, total.Equal(want), "grants %s, want %s", total, want)
}

func TestBirthGrantsNeedCitizenOrPRParent(t *testing.T) {
	g := testGenerator()
	profile := testProfile()
	profile.Father.Residency = domain.ResidencyForeigner
	profile.Mother.Residency = domain.ResidencyForeigner

	evs := g.Generate(0, profile, noDecisions())
	require.Len(t, evs, 1)
	assert.Empty(t, evs[0].BenefitItems)
}

func TestStageTransitionAges(t *testing.T) {
	g := testGenerator()

	tests := []struct {
		name   string
		age    int
		events int
	}{
		{"kindergarten notice plus choice", domain.MonthsKindergarten, 3}, // plus annual tax at 36
		{"primary start plus enrichment", domain.MonthsPrimary, 3},
		{"secondary start plus route", domain.MonthsSecondary, 3},
		{"post-secondary notice plus path", domain.MonthsPostSecondary, 3},
		{"plain month", 37, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs := g.Generate(tt.age, testProfile(), noDecisions())
			assert.Len(t, evs, tt.events)
		})
	}
}

func TestAnnualTaxEventIsLastAndNonInteractive(t *testing.T) {
	g := testGenerator()
	evs := g.Generate(domain.MonthsKindergarten, testProfile(), noDecisions())
	require.NotEmpty(t, evs)

	taxEv := evs[len(evs)-1]
	assert.Equal(t, domain.CategoryTax, taxEv.Category)
	assert.False(t, taxEv.RequiresDecision)
	assert.True(t, taxEv.ReportingOnlyBenefit)
	assert.True(t, taxEv.TotalCost().GreaterThan(decimal.Zero))
}

func TestNoTaxEventAtBirth(t *testing.T) {
	g := testGenerator()
	for _, ev := range g.Generate(0, testProfile(), noDecisions()) {
		assert.NotEqual(t, domain.CategoryTax, ev.Category)
	}
}

func TestEveryChoiceHasAZeroCostOption(t *testing.T) {
	g := testGenerator()
	ages := []int{0, 2, 18, domain.MonthsKindergarten, domain.MonthsPrimary,
		domain.MonthsSecondary, domain.MonthsPostSecondary, domain.MonthsUniversityFemale}

	for _, age := range ages {
		for _, ev := range g.Generate(age, testProfile(), noDecisions()) {
			if len(ev.Options) == 0 || ev.AgeMonths == 0 {
				continue // delivery is the one unavoidable cost
			}
			assert.True(t, ev.HasZeroCostOption(),
				"%q at %d months has no free option", ev.Title, age)
		}
	}
}

func TestNSNoticeOnlyForBoys(t *testing.T) {
	g := testGenerator()

	boy := testProfile()
	boy.ChildGender = domain.GenderMale
	evs := g.Generate(domain.MonthsNSStart, boy, noDecisions())
	require.NotEmpty(t, evs)
	assert.Contains(t, evs[0].Title, "National service")

	evs = g.Generate(domain.MonthsNSStart, testProfile(), noDecisions())
	for _, ev := range evs {
		assert.NotContains(t, ev.Title, "National service")
	}
}

func TestUniversityChoiceSkippedForWorkPath(t *testing.T) {
	g := testGenerator()

	working := noDecisions()
	working.PostSecondaryPath = domain.PathWork
	for _, ev := range g.Generate(domain.MonthsUniversityFemale, testProfile(), working) {
		assert.NotEqual(t, "University", ev.Title)
	}

	evs := g.Generate(domain.MonthsUniversityFemale, testProfile(), noDecisions())
	require.NotEmpty(t, evs)
	assert.Equal(t, "University", evs[0].Title)
}

func TestMonthlyCostNetsSubsidy(t *testing.T) {
	g := testGenerator()
	profile := testProfile()
	profile.Father.GrossMonthlyIncome = decimal.NewFromInt(3000)
	profile.Mother.GrossMonthlyIncome = decimal.Zero

	// Month six falls in the base year, so projection is the identity and
	// the numbers come straight from the tables: infant care fee 1,360,
	// subsidy 600 basic plus 467 additional.
	outlay := g.MonthlyCost(6, profile, noDecisions())
	assert.True(t, outlay.Fee.Equal(decimal.NewFromInt(1360)), "fee %s", outlay.Fee)
	assert.True(t, outlay.Subsidy.Equal(decimal.NewFromInt(1067)), "subsidy %s", outlay.Subsidy)
	assert.True(t, outlay.NetFee().Equal(decimal.NewFromInt(293)), "net %s", outlay.NetFee())
}

func TestMonthlyCostHonorsHomeCareChoices(t *testing.T) {
	g := testGenerator()
	profile := testProfile()

	tests := []struct {
		name      string
		key       string
		choice    string
		ageMonths int
	}{
		{"family infant care", domain.ChoiceKeyInfantCare, choiceFamilyCare, 6},
		{"stay-home childcare", domain.ChoiceKeyChildcare, choiceStayHome, 24},
		{"home-based kindergarten", domain.ChoiceKeyKindergarten, choiceStayHome, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paid := g.MonthlyCost(tt.ageMonths, testProfile(), noDecisions())
			require.True(t, paid.Fee.IsPositive(), "paid fee %s", paid.Fee)

			d := noDecisions()
			d.Choices[tt.key] = tt.choice
			outlay := g.MonthlyCost(tt.ageMonths, profile, d)
			assert.True(t, outlay.Fee.IsZero(), "fee %s", outlay.Fee)
			assert.True(t, outlay.Subsidy.IsZero(), "subsidy %s", outlay.Subsidy)
		})
	}
}

func TestMonthlyCostNetFeeFloorsAtZero(t *testing.T) {
	outlay := MonthlyOutlay{
		Fee:     decimal.NewFromInt(600),
		Subsidy: decimal.NewFromInt(1067),
	}
	assert.True(t, outlay.NetFee().IsZero())
}

func TestMonthlyCostDuringNationalService(t *testing.T) {
	g := testGenerator()
	profile := testProfile()
	profile.ChildGender = domain.GenderMale

	outlay := g.MonthlyCost(domain.MonthsNSStart+6, profile, noDecisions())
	assert.True(t, outlay.Allowance.Equal(decimal.NewFromInt(755)), "allowance %s", outlay.Allowance)
}

func TestMonthlyCostZeroForAdult(t *testing.T) {
	g := testGenerator()
	outlay := g.MonthlyCost(400, testProfile(), noDecisions())
	assert.True(t, outlay.Total().IsZero())
}

func TestRealismTierScalesLiving(t *testing.T) {
	g := testGenerator()

	realistic := testProfile()
	lavish := testProfile()
	lavish.Realism = domain.TierConservative

	a := g.MonthlyCost(100, realistic, noDecisions())
	b := g.MonthlyCost(100, lavish, noDecisions())
	assert.True(t, b.Living.GreaterThan(a.Living))
}

func TestProjectionInflatesLaterYears(t *testing.T) {
	g := testGenerator()
	profile := testProfile()

	// Both ages fall in primary school, so only the calendar year differs.
	now := g.MonthlyCost(90, profile, noDecisions())
	later := g.MonthlyCost(140, profile, noDecisions())
	assert.True(t, later.Living.GreaterThan(now.Living),
		"living a few years later must cost more nominally")
}

func TestDecisionsPathDefaultsToJuniorCollege(t *testing.T) {
	assert.Equal(t, domain.PathJuniorCollege, noDecisions().Path())

	d := noDecisions()
	d.PostSecondaryPath = domain.PathPolytechnic
	assert.Equal(t, domain.PathPolytechnic, d.Path())
}
