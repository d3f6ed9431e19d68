// Package output renders a final ledger snapshot for reporting. The core
// guarantees the snapshot's internal consistency; this package only formats.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders a decimal amount as S$ with thousands separators.
// Fractional cents carried through the computation are rounded here, at
// presentation, and nowhere else.
func FormatCurrency(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return "S$" + humanize.CommafWithDigits(f, 2)
}

// categoryOrder fixes the reporting order of the breakdown.
var categoryOrder = []domain.CostCategory{
	domain.CategoryEducation,
	domain.CategoryMedical,
	domain.CategoryMiscellaneous,
	domain.CategoryTax,
}

var stageOrder = []domain.GrowthStage{
	domain.StageNewborn,
	domain.StageKindergarten,
	domain.StagePrimary,
	domain.StageSecondary,
	domain.StagePostSecondary,
	domain.StageNationalService,
	domain.StageUniversity,
}

// WriteConsoleReport renders the human-readable run summary.
func WriteConsoleReport(w io.Writer, snap *domain.LedgerSnapshot) {
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintln(w, "CHILD-RAISING COST SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintf(w, "Final age:          %d months (%.1f years)\n", snap.AgeMonths, float64(snap.AgeMonths)/12)
	fmt.Fprintf(w, "Outcome:            %s\n", outcomeLabel(snap.Result))
	fmt.Fprintf(w, "Household savings:  %s\n", FormatCurrency(snap.HouseholdSavings))
	fmt.Fprintf(w, "Total expenditure:  %s\n", FormatCurrency(snap.TotalExpenditure))
	fmt.Fprintf(w, "Total benefits:     %s\n", FormatCurrency(snap.TotalBenefits))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "EXPENDITURE BY CATEGORY")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, cat := range categoryOrder {
		if v, ok := snap.PerCategory[cat]; ok {
			fmt.Fprintf(w, "%-16s %s\n", cat, FormatCurrency(v))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "EXPENDITURE BY STAGE")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, stage := range stageOrder {
		if v, ok := snap.PerStage[stage]; ok {
			fmt.Fprintf(w, "%-18s %s\n", stage, FormatCurrency(v))
		}
	}
	fmt.Fprintln(w)

	if len(snap.DecisionsLog) > 0 {
		fmt.Fprintln(w, "DECISIONS")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, rec := range snap.DecisionsLog {
			line := fmt.Sprintf("%3dmo  %s", rec.AgeMonths, rec.EventTitle)
			if rec.Option != "" {
				line += " → " + rec.Option
			}
			fmt.Fprintf(w, "%-52s %s\n", line, FormatCurrency(rec.Cost))
		}
	}
}

func outcomeLabel(result domain.RunResult) string {
	switch result {
	case domain.ResultRanOutOfMoney:
		return "ran out of money"
	case domain.ResultReachedAdulthood:
		return "child reached adulthood"
	case domain.ResultManuallyEnded:
		return "ended manually"
	}
	return "in progress"
}
