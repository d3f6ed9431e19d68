package domain

import "github.com/shopspring/decimal"

// CostCategory buckets ledger expenditure for reporting.
type CostCategory string

const (
	CategoryEducation     CostCategory = "education"
	CategoryMedical       CostCategory = "medical"
	CategoryMiscellaneous CostCategory = "miscellaneous"
	CategoryTax           CostCategory = "tax"
)

// Decision slots whose chosen values feed back into later cost logic. The
// post-secondary slot carries a PostSecondaryPath; the care slots carry the
// chosen care arrangement and control whether a monthly care fee applies.
const (
	ChoiceKeyPostSecondaryPath = "post_secondary_path"
	ChoiceKeyInfantCare        = "infant_care"
	ChoiceKeyChildcare         = "childcare"
	ChoiceKeyKindergarten      = "kindergarten"
)

// LineItem is a single named monetary amount on an event.
type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// DecisionOption is one choice the caller can make on a decision event.
// Choice carries a semantic value consumed by later stage logic, e.g. the
// selected post-secondary path.
type DecisionOption struct {
	Label       string          `json:"label"`
	OneTimeCost decimal.Decimal `json:"oneTimeCost"`
	Choice      string          `json:"choice,omitempty"`
}

// CostEvent is a discrete life-stage event produced by the generator.
// Events are immutable and consumed exactly once.
type CostEvent struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Category  CostCategory `json:"category"`
	AgeMonths int          `json:"ageMonths"`

	// CostItems and BenefitItems apply unconditionally when the event is
	// acknowledged or decided.
	CostItems    []LineItem `json:"costItems,omitempty"`
	BenefitItems []LineItem `json:"benefitItems,omitempty"`

	Options          []DecisionOption `json:"options,omitempty"`
	RequiresDecision bool             `json:"requiresDecision"`

	// ChoiceKey names the decision slot the chosen option's Choice value
	// is stored under, so later stage logic can consume it.
	ChoiceKey string `json:"choiceKey,omitempty"`

	// ReportingOnlyBenefit marks benefit items that must not be credited
	// to household savings. The annual tax event uses this to report
	// avoided tax without double counting.
	ReportingOnlyBenefit bool `json:"reportingOnlyBenefit,omitempty"`
}

// TotalCost sums the fixed cost line items.
func (e *CostEvent) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range e.CostItems {
		total = total.Add(it.Amount)
	}
	return total
}

// TotalBenefit sums the fixed benefit line items.
func (e *CostEvent) TotalBenefit() decimal.Decimal {
	total := decimal.Zero
	for _, it := range e.BenefitItems {
		total = total.Add(it.Amount)
	}
	return total
}

// HasZeroCostOption reports whether the event carries a "do nothing" choice.
func (e *CostEvent) HasZeroCostOption() bool {
	for _, opt := range e.Options {
		if opt.OneTimeCost.IsZero() {
			return true
		}
	}
	return false
}
