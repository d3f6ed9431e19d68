// Package inflation converts costs between reference years using CPI
// ratios, extrapolating geometrically past the known series.
package inflation

import (
	"context"

	"github.com/kidcost/kidcost/internal/rates"
	"github.com/shopspring/decimal"
)

// CPISource yields a CPI table; satisfied by datasource.Client.
type CPISource interface {
	CPITable(ctx context.Context) rates.CPITable
}

// Adjuster converts a cost at one reference year into an equivalent cost at
// another year.
type Adjuster struct {
	table rates.CPITable
}

// New creates an adjuster over a fixed table.
func New(table rates.CPITable) *Adjuster {
	return &Adjuster{table: table}
}

// NewFromSource resolves the table from a data source at construction time.
// The source's fallback chain guarantees a usable table.
func NewFromSource(ctx context.Context, src CPISource) *Adjuster {
	return &Adjuster{table: src.CPITable(ctx)}
}

// Degraded reports whether the adjuster is running on embedded fallback data.
func (a *Adjuster) Degraded() bool {
	return a.table.Degraded
}

// Adjust converts cost from fromYear dollars to toYear dollars. Equal years
// return the cost unchanged.
func (a *Adjuster) Adjust(cost decimal.Decimal, fromYear, toYear int) decimal.Decimal {
	if fromYear == toYear {
		return cost
	}
	from := a.table.Index(fromYear)
	if from.IsZero() {
		return cost
	}
	return cost.Mul(a.table.Index(toYear)).Div(from)
}
