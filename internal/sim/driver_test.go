package sim

import (
	"testing"

	"github.com/kidcost/kidcost/internal/benefits"
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/events"
	"github.com/kidcost/kidcost/internal/inflation"
	"github.com/kidcost/kidcost/internal/rates"
	"github.com/kidcost/kidcost/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *events.Generator {
	tables := rates.NewTables2025()
	return events.NewGenerator(
		tax.NewEngine(tables),
		benefits.NewEngine(tables),
		inflation.New(rates.NewCPITable2025()),
		tables,
	)
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		Father: domain.Parent{
			Residency:               domain.ResidencyCitizen,
			GrossMonthlyIncome:      decimal.NewFromInt(6000),
			DisposableMonthlyIncome: decimal.NewFromInt(2000),
		},
		Mother: domain.Parent{
			Residency:               domain.ResidencyCitizen,
			GrossMonthlyIncome:      decimal.NewFromInt(4500),
			DisposableMonthlyIncome: decimal.NewFromInt(1500),
		},
		FamilySavings: decimal.NewFromInt(80000),
		ChildName:     "Wei",
		ChildGender:   domain.GenderFemale,
		ChildOrder:    1,
		Realism:       domain.TierRealistic,
		BaseYear:      2025,
	}
}

func testDriver(t *testing.T, profile *domain.Profile) *Driver {
	t.Helper()
	d, err := New(profile, testGenerator(), nil)
	require.NoError(t, err)
	return d
}

func TestNewRejectsInvalidProfile(t *testing.T) {
	profile := testProfile()
	profile.ChildOrder = 0
	_, err := New(profile, testGenerator(), nil)
	assert.ErrorIs(t, err, domain.ErrProfileInvalid)
}

func TestStartQueuesBirthAndPauses(t *testing.T) {
	d := testDriver(t, testProfile())

	require.NoError(t, d.Start())
	assert.Equal(t, domain.StatusPaused, d.Status())

	ev, ok := d.NextPendingEvent()
	require.True(t, ok)
	assert.True(t, ev.RequiresDecision)
	assert.Equal(t, 0, ev.AgeMonths)
	assert.NotEmpty(t, ev.BenefitItems, "birth grants expected for a citizen child")
}

func TestStateGuards(t *testing.T) {
	d := testDriver(t, testProfile())

	// STOPPED: only Start is legal.
	assert.ErrorIs(t, d.Tick(), domain.ErrInvalidState)
	assert.ErrorIs(t, d.Pause(), domain.ErrInvalidState)
	assert.ErrorIs(t, d.Resume(), domain.ErrInvalidState)

	require.NoError(t, d.Start())
	assert.ErrorIs(t, d.Start(), domain.ErrInvalidState)

	// PAUSED with pending events: no ticking, no resuming past the queue.
	assert.ErrorIs(t, d.Tick(), domain.ErrInvalidState)
	assert.ErrorIs(t, d.Resume(), domain.ErrInvalidState)
}

func TestAcknowledgeRefusesDecisionEvent(t *testing.T) {
	d := testDriver(t, testProfile())
	require.NoError(t, d.Start())

	ev, ok := d.NextPendingEvent()
	require.True(t, ok)
	assert.ErrorIs(t, d.Acknowledge(ev.ID), domain.ErrDecisionRequired)

	// The refused event stays pending.
	_, ok = d.NextPendingEvent()
	assert.True(t, ok)
}

func TestDecideValidatesOptionIndex(t *testing.T) {
	d := testDriver(t, testProfile())
	require.NoError(t, d.Start())

	ev, _ := d.NextPendingEvent()
	assert.ErrorIs(t, d.Decide(ev.ID, -1), domain.ErrInvalidOption)
	assert.ErrorIs(t, d.Decide(ev.ID, len(ev.Options)), domain.ErrInvalidOption)
	assert.ErrorIs(t, d.Decide("no-such-event", 0), domain.ErrUnknownEvent)
}

func TestDecideResolvesAndResumes(t *testing.T) {
	d := testDriver(t, testProfile())
	require.NoError(t, d.Start())

	ev, _ := d.NextPendingEvent()
	opening := testProfile().FamilySavings
	require.NoError(t, d.Decide(ev.ID, 0))

	assert.Equal(t, domain.StatusRunning, d.Status())

	snap := d.Snapshot()
	require.Len(t, snap.DecisionsLog, 1)
	assert.Equal(t, ev.Options[0].Label, snap.DecisionsLog[0].Option)
	assert.True(t, snap.TotalExpenditure.Equal(ev.Options[0].OneTimeCost))

	// Savings moved by benefits minus the chosen delivery cost.
	want := opening.Add(snap.TotalBenefits).Sub(snap.TotalExpenditure)
	assert.True(t, snap.HouseholdSavings.Equal(want),
		"savings %s, want %s", snap.HouseholdSavings, want)
}

func TestLedgerBreakdownSumsToTotal(t *testing.T) {
	d := testDriver(t, testProfile())
	require.NoError(t, d.Start())

	// Drain events and tick through the first three years.
	for months := 0; months < 36 && d.Status() != domain.StatusStopped; {
		if ev, ok := d.NextPendingEvent(); ok {
			if ev.RequiresDecision {
				require.NoError(t, d.Decide(ev.ID, 0))
			} else {
				require.NoError(t, d.Acknowledge(ev.ID))
			}
			continue
		}
		require.NoError(t, d.Tick())
		months++
	}

	snap := d.Snapshot()
	byCategory := decimal.Zero
	for _, v := range snap.PerCategory {
		byCategory = byCategory.Add(v)
	}
	byStage := decimal.Zero
	for _, v := range snap.PerStage {
		byStage = byStage.Add(v)
	}
	assert.True(t, snap.TotalExpenditure.Equal(byCategory),
		"category sum %s, total %s", byCategory, snap.TotalExpenditure)
	assert.True(t, snap.TotalExpenditure.Equal(byStage),
		"stage sum %s, total %s", byStage, snap.TotalExpenditure)
	assert.True(t, snap.TotalExpenditure.GreaterThan(decimal.Zero))
}

func TestHomeCareDecisionZeroesCareFees(t *testing.T) {
	d := testDriver(t, testProfile())
	require.NoError(t, d.Start())

	// Run through the first half year picking the free care arrangement at
	// every decision point. Only the birth has no free option.
	for d.AgeMonths() < 6 && d.Status() != domain.StatusStopped {
		if ev, ok := d.NextPendingEvent(); ok {
			if ev.RequiresDecision {
				idx := 0
				for i, opt := range ev.Options {
					if opt.OneTimeCost.IsZero() {
						idx = i
						break
					}
				}
				require.NoError(t, d.Decide(ev.ID, idx))
			} else {
				require.NoError(t, d.Acknowledge(ev.ID))
			}
			continue
		}
		require.NoError(t, d.Tick())
	}

	// With the child cared for by family, no care fee accrues: the
	// education category stays at zero through infancy.
	snap := d.Snapshot()
	edu := snap.PerCategory[domain.CategoryEducation]
	assert.True(t, edu.IsZero(), "education spend %s with family care chosen", edu)
}

func TestRunsOutOfMoneyOnFirstTick(t *testing.T) {
	profile := testProfile()
	profile.FamilySavings = decimal.Zero
	profile.Father.DisposableMonthlyIncome = decimal.Zero
	profile.Mother.DisposableMonthlyIncome = decimal.Zero

	d := testDriver(t, profile)
	// Skip the birth queue and drive the monthly flow directly.
	d.status = domain.StatusRunning
	require.NoError(t, d.Tick())

	assert.Equal(t, domain.StatusStopped, d.Status())
	assert.Equal(t, domain.ResultRanOutOfMoney, d.Result())

	snap := d.Snapshot()
	assert.True(t, snap.HouseholdSavings.IsZero(),
		"savings must land at exactly zero, got %s", snap.HouseholdSavings)
	assert.Equal(t, domain.ResultRanOutOfMoney, snap.Result)
}

func TestReportingOnlyBenefitNotCredited(t *testing.T) {
	d := testDriver(t, testProfile())
	d.status = domain.StatusPaused
	d.queue = []domain.CostEvent{{
		ID:                   "tax-1",
		Title:                "Annual income tax",
		Category:             domain.CategoryTax,
		AgeMonths:            12,
		ReportingOnlyBenefit: true,
		CostItems:            []domain.LineItem{{Label: "Net tax payable", Amount: decimal.NewFromInt(1000)}},
		BenefitItems:         []domain.LineItem{{Label: "Tax avoided through reliefs", Amount: decimal.NewFromInt(900)}},
	}}

	require.NoError(t, d.Acknowledge("tax-1"))

	snap := d.Snapshot()
	want := testProfile().FamilySavings.Sub(decimal.NewFromInt(1000))
	assert.True(t, snap.HouseholdSavings.Equal(want),
		"avoided tax must not be credited: got %s, want %s", snap.HouseholdSavings, want)
	assert.True(t, snap.TotalBenefits.IsZero())
}

func TestPostSecondaryPathChangesTerminalAge(t *testing.T) {
	d := testDriver(t, testProfile())
	d.status = domain.StatusPaused
	d.queue = []domain.CostEvent{{
		ID:               "path-1",
		Title:            "Post-secondary path",
		Category:         domain.CategoryEducation,
		AgeMonths:        domain.MonthsPostSecondary,
		RequiresDecision: true,
		ChoiceKey:        domain.ChoiceKeyPostSecondaryPath,
		Options: []domain.DecisionOption{
			{Label: "Straight to work", OneTimeCost: decimal.Zero, Choice: string(domain.PathWork)},
		},
	}}
	d.ageMonths = domain.MonthsPostSecondary

	assert.Equal(t, domain.PathJuniorCollege, d.Path())
	require.NoError(t, d.Decide("path-1", 0))
	require.Equal(t, domain.StatusRunning, d.Status())
	assert.Equal(t, domain.PathWork, d.Path())

	// Working pulls the terminal age forward; tick up to it, clearing the
	// annual tax events along the way.
	terminal := domain.TerminalAgeMonths(domain.GenderFemale, domain.PathWork)
	for d.Status() != domain.StatusStopped {
		if ev, ok := d.NextPendingEvent(); ok {
			require.NoError(t, d.Acknowledge(ev.ID))
			continue
		}
		require.NoError(t, d.Tick())
	}
	assert.Equal(t, domain.ResultReachedAdulthood, d.Result())
	assert.Equal(t, terminal, d.AgeMonths())
}

func TestEndIsManualAndIdempotent(t *testing.T) {
	d := testDriver(t, testProfile())

	// Ending a never-started session stays result-free.
	d.End()
	assert.Equal(t, domain.ResultNone, d.Result())

	require.NoError(t, d.Start())
	d.End()
	assert.Equal(t, domain.StatusStopped, d.Status())
	assert.Equal(t, domain.ResultManuallyEnded, d.Result())

	d.End()
	assert.Equal(t, domain.ResultManuallyEnded, d.Result())
}

func TestSetTickRate(t *testing.T) {
	d := testDriver(t, testProfile())
	assert.ErrorIs(t, d.SetTickRate(0), domain.ErrInvalidState)
	assert.ErrorIs(t, d.SetTickRate(-1), domain.ErrInvalidState)
	require.NoError(t, d.SetTickRate(4))
	assert.Equal(t, 4.0, d.TickRate())
}
