// Package events maps the child's age, the household profile and the
// choices made so far onto discrete cost events: stage transitions, care
// and schooling decisions, milestone grants and the annual tax bill.
package events

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kidcost/kidcost/internal/benefits"
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/inflation"
	"github.com/kidcost/kidcost/internal/rates"
	"github.com/kidcost/kidcost/internal/tax"
	"github.com/shopspring/decimal"
)

// Care-arrangement choice values. The zero-fee arrangements keep the child
// out of paid care, so no monthly care fee applies while they are in effect.
const (
	choiceFamilyCare = "family"
	choiceStayHome   = "home"
)

// Decisions accumulates the semantic choice values made in earlier events,
// keyed by the event's choice slot. The post-secondary path feeds back into
// stage resolution and fee lookups; the care slots gate monthly care fees.
type Decisions struct {
	PostSecondaryPath domain.PostSecondaryPath
	Choices           map[string]string
}

// homeCare reports whether the choice stored under key keeps the child out
// of paid care.
func (d Decisions) homeCare(key string) bool {
	switch d.Choices[key] {
	case choiceFamilyCare, choiceStayHome:
		return true
	}
	return false
}

// Path returns the chosen post-secondary path, defaulting to junior college
// for fee lookups before the decision is made.
func (d Decisions) Path() domain.PostSecondaryPath {
	if d.PostSecondaryPath == "" {
		return domain.PathJuniorCollege
	}
	return d.PostSecondaryPath
}

// Generator derives events and recurring monthly outlays. Generate is a
// pure function of its arguments; the generator itself holds only engines
// and tables.
type Generator struct {
	tax      *tax.Engine
	benefits *benefits.Engine
	adjuster *inflation.Adjuster
	fees     rates.FeeConfig
	benefit  rates.BenefitConfig
}

// NewGenerator wires the engines the event computations need.
func NewGenerator(taxEngine *tax.Engine, benefitEngine *benefits.Engine, adjuster *inflation.Adjuster, tables *rates.Tables) *Generator {
	return &Generator{
		tax:      taxEngine,
		benefits: benefitEngine,
		adjuster: adjuster,
		fees:     tables.Fees,
		benefit:  tables.Benefits,
	}
}

// yearAt maps an age in months to the calendar year it falls in.
func yearAt(profile *domain.Profile, ageMonths int) int {
	return profile.BaseYear + ageMonths/12
}

// project moves a reference-year cost to the year the event fires in.
func (g *Generator) project(cost decimal.Decimal, profile *domain.Profile, ageMonths int) decimal.Decimal {
	return g.adjuster.Adjust(cost, g.fees.ReferenceYear, yearAt(profile, ageMonths))
}

// Generate returns the ordered events for one age: birth and stage
// transitions first, then category micro-events, then the annual tax check.
func (g *Generator) Generate(ageMonths int, profile *domain.Profile, decisions Decisions) []domain.CostEvent {
	var out []domain.CostEvent

	add := func(ev *domain.CostEvent) {
		ev.ID = uuid.NewString()
		ev.AgeMonths = ageMonths
		out = append(out, *ev)
	}

	switch ageMonths {
	case 0:
		add(g.birthEvent(profile))
	case domain.MonthsKindergarten:
		add(g.stageNotice("Kindergarten years begin"))
		add(g.kindergartenChoice(profile, ageMonths))
	case domain.MonthsPrimary:
		add(g.primaryEvent(profile, ageMonths))
		add(g.enrichmentChoice(profile, ageMonths))
	case domain.MonthsSecondary:
		add(g.secondaryEvent(profile, ageMonths))
		add(g.secondaryChoice(profile, ageMonths))
	case domain.MonthsPostSecondary:
		add(g.stageNotice("Post-secondary years begin"))
		add(g.postSecondaryChoice(profile, ageMonths))
	}

	// Micro-events with gender- or decision-dependent triggers.
	switch {
	case ageMonths == 2:
		add(g.infantCareChoice(profile, ageMonths))
	case ageMonths == 18:
		add(g.childcareChoice(profile, ageMonths))
	case profile.ChildGender == domain.GenderMale && ageMonths == domain.MonthsNSStart:
		add(g.stageNotice("National service enlistment"))
	}

	if age := universityAge(profile.ChildGender); ageMonths == age && decisions.Path() != domain.PathWork {
		add(g.universityChoice(profile, ageMonths))
	}

	// Annual tax check, independent of stage, always last in the queue.
	if ageMonths > 0 && ageMonths%12 == 0 {
		add(g.annualTaxEvent(profile))
	}

	return out
}

func universityAge(gender domain.Gender) int {
	if gender == domain.GenderMale {
		return domain.MonthsUniversityMale
	}
	return domain.MonthsUniversityFemale
}

func (g *Generator) stageNotice(title string) *domain.CostEvent {
	return &domain.CostEvent{
		Title:    title,
		Category: domain.CategoryMiscellaneous,
	}
}

// birthEvent is the mandatory delivery decision plus the birth grants.
func (g *Generator) birthEvent(profile *domain.Profile) *domain.CostEvent {
	ev := &domain.CostEvent{
		Title:            fmt.Sprintf("%s arrives", profile.ChildName),
		Category:         domain.CategoryMedical,
		RequiresDecision: true,
		Options: []domain.DecisionOption{
			{Label: "Public hospital, ward B1", OneTimeCost: decimal.NewFromInt(2400)},
			{Label: "Public hospital, ward A", OneTimeCost: decimal.NewFromInt(4800)},
			{Label: "Private hospital", OneTimeCost: decimal.NewFromInt(9000)},
		},
	}
	for _, scheme := range []benefits.Scheme{
		g.benefits.BabyBonus(),
		g.benefits.CDAGrant(),
		g.benefits.MediSaveGrant(),
	} {
		if !g.benefits.Eligible(scheme, profile, 0) {
			continue
		}
		if v := g.benefits.Value(scheme, profile); v.GreaterThan(decimal.Zero) {
			ev.BenefitItems = append(ev.BenefitItems, domain.LineItem{Label: scheme.Name, Amount: v})
		}
	}
	return ev
}

func (g *Generator) infantCareChoice(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	return &domain.CostEvent{
		Title:     "Infant care arrangements",
		Category:  domain.CategoryEducation,
		ChoiceKey: domain.ChoiceKeyInfantCare,
		Options: []domain.DecisionOption{
			{Label: "Infant care centre (registration)", OneTimeCost: g.project(decimal.NewFromInt(190), profile, ageMonths), Choice: "infantcare"},
			{Label: "Cared for by family", OneTimeCost: decimal.Zero, Choice: choiceFamilyCare},
		},
		RequiresDecision: true,
	}
}

func (g *Generator) childcareChoice(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	return &domain.CostEvent{
		Title:     "Childcare enrollment",
		Category:  domain.CategoryEducation,
		ChoiceKey: domain.ChoiceKeyChildcare,
		Options: []domain.DecisionOption{
			{Label: "Anchor operator centre (deposit)", OneTimeCost: g.project(decimal.NewFromInt(150), profile, ageMonths), Choice: "anchor"},
			{Label: "Private centre (deposit)", OneTimeCost: g.project(decimal.NewFromInt(800), profile, ageMonths), Choice: "private"},
			{Label: "Stay home", OneTimeCost: decimal.Zero, Choice: choiceStayHome},
		},
		RequiresDecision: true,
	}
}

func (g *Generator) kindergartenChoice(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	return &domain.CostEvent{
		Title:     "Kindergarten choice",
		Category:  domain.CategoryEducation,
		ChoiceKey: domain.ChoiceKeyKindergarten,
		Options: []domain.DecisionOption{
			{Label: "MOE kindergarten (registration)", OneTimeCost: g.project(decimal.NewFromInt(170), profile, ageMonths), Choice: "moe"},
			{Label: "Anchor operator (registration)", OneTimeCost: g.project(decimal.NewFromInt(600), profile, ageMonths), Choice: "anchor"},
			{Label: "Private kindergarten (registration)", OneTimeCost: g.project(decimal.NewFromInt(1500), profile, ageMonths), Choice: "private"},
			{Label: "Home-based learning", OneTimeCost: decimal.Zero, Choice: choiceStayHome},
		},
		RequiresDecision: true,
	}
}

// primaryEvent carries the school registration cost and the Edusave
// contributions for the primary years as a benefit.
func (g *Generator) primaryEvent(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	ev := &domain.CostEvent{
		Title:    "Primary school begins",
		Category: domain.CategoryEducation,
		CostItems: []domain.LineItem{
			{Label: "Registration and uniforms", Amount: g.project(decimal.NewFromInt(250), profile, ageMonths)},
		},
	}
	scheme := g.benefits.EdusavePrimary()
	if g.benefits.Eligible(scheme, profile, ageMonths) {
		years := decimal.NewFromInt(6)
		ev.BenefitItems = append(ev.BenefitItems, domain.LineItem{
			Label:  "Edusave contributions (primary years)",
			Amount: g.benefits.Value(scheme, profile).Mul(years),
		})
	}
	return ev
}

func (g *Generator) enrichmentChoice(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	scale := profile.Realism.Multiplier()
	return &domain.CostEvent{
		Title:    "Enrichment and tuition",
		Category: domain.CategoryEducation,
		Options: []domain.DecisionOption{
			{Label: "Full enrichment programme", OneTimeCost: g.project(decimal.NewFromInt(3600).Mul(scale), profile, ageMonths), Choice: "full"},
			{Label: "Selective tuition", OneTimeCost: g.project(decimal.NewFromInt(1200).Mul(scale), profile, ageMonths), Choice: "selective"},
			{Label: "None", OneTimeCost: decimal.Zero, Choice: "none"},
		},
		RequiresDecision: true,
	}
}

func (g *Generator) secondaryEvent(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	ev := &domain.CostEvent{
		Title:    "Secondary school begins",
		Category: domain.CategoryEducation,
		CostItems: []domain.LineItem{
			{Label: "Books and equipment", Amount: g.project(decimal.NewFromInt(400), profile, ageMonths)},
		},
	}
	scheme := g.benefits.EdusaveSecondary()
	if g.benefits.Eligible(scheme, profile, ageMonths) {
		years := decimal.NewFromInt(4)
		ev.BenefitItems = append(ev.BenefitItems, domain.LineItem{
			Label:  "Edusave contributions (secondary years)",
			Amount: g.benefits.Value(scheme, profile).Mul(years),
		})
	}
	return ev
}

func (g *Generator) secondaryChoice(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	return &domain.CostEvent{
		Title:    "Secondary school route",
		Category: domain.CategoryEducation,
		Options: []domain.DecisionOption{
			{Label: "Independent school (annual top-up)", OneTimeCost: g.project(decimal.NewFromInt(4800), profile, ageMonths), Choice: "independent"},
			{Label: "Government school", OneTimeCost: decimal.Zero, Choice: "government"},
		},
		RequiresDecision: true,
	}
}

// postSecondaryChoice is mandatory by construction: a path must be picked,
// and the chosen path changes the terminal age and later fee lookups.
func (g *Generator) postSecondaryChoice(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	return &domain.CostEvent{
		Title:            "Post-secondary path",
		Category:         domain.CategoryEducation,
		RequiresDecision: true,
		ChoiceKey:        domain.ChoiceKeyPostSecondaryPath,
		Options: []domain.DecisionOption{
			{Label: "Junior college", OneTimeCost: g.project(decimal.NewFromInt(500), profile, ageMonths), Choice: string(domain.PathJuniorCollege)},
			{Label: "Polytechnic", OneTimeCost: g.project(decimal.NewFromInt(600), profile, ageMonths), Choice: string(domain.PathPolytechnic)},
			{Label: "ITE", OneTimeCost: g.project(decimal.NewFromInt(400), profile, ageMonths), Choice: string(domain.PathITE)},
			{Label: "Straight to work", OneTimeCost: decimal.Zero, Choice: string(domain.PathWork)},
		},
	}
}

func (g *Generator) universityChoice(profile *domain.Profile, ageMonths int) *domain.CostEvent {
	local := g.project(g.fees.UniversityTotalFee["local"], profile, ageMonths)
	overseas := g.project(g.fees.UniversityTotalFee["overseas"], profile, ageMonths)
	return &domain.CostEvent{
		Title:    "University",
		Category: domain.CategoryEducation,
		Options: []domain.DecisionOption{
			{Label: "Local university (full course)", OneTimeCost: local, Choice: "local"},
			{Label: "Overseas university (full course)", OneTimeCost: overseas, Choice: "overseas"},
			{Label: "No university", OneTimeCost: decimal.Zero, Choice: "none"},
		},
		RequiresDecision: true,
	}
}

// annualTaxEvent is non-interactive. Its benefit line reports avoided tax
// for the breakdown only and must never be credited to savings.
func (g *Generator) annualTaxEvent(profile *domain.Profile) *domain.CostEvent {
	result := g.tax.ComputeNetTax(profile, profile.ChildOrder, profile.ChildBornAfterCutoff)
	ev := &domain.CostEvent{
		Title:                "Annual income tax",
		Category:             domain.CategoryTax,
		ReportingOnlyBenefit: true,
		CostItems: []domain.LineItem{
			{Label: "Net tax payable", Amount: result.NetTaxPayable},
		},
	}
	if avoided := result.AvoidedTax(); avoided.GreaterThan(decimal.Zero) {
		ev.BenefitItems = append(ev.BenefitItems, domain.LineItem{Label: "Tax avoided through reliefs", Amount: avoided})
	}
	return ev
}
