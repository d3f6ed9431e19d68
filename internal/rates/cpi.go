package rates

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CPITable maps years to consumer price index values, with a default annual
// rate used to extrapolate years outside the table.
type CPITable struct {
	Series            map[int]decimal.Decimal `yaml:"series"`
	DefaultAnnualRate decimal.Decimal         `yaml:"default_annual_rate"`

	// Degraded is set when the table came from embedded data after every
	// data-source fallback failed. Reporting only.
	Degraded bool `yaml:"-"`
}

// NewCPITable2025 returns the embedded Singapore CPI reference series
// (2019 = 100).
func NewCPITable2025() CPITable {
	return CPITable{
		Series: map[int]decimal.Decimal{
			2019: d(100.0),
			2020: d(99.8),
			2021: d(102.1),
			2022: d(108.4),
			2023: d(113.6),
			2024: d(116.3),
			2025: d(117.8),
		},
		DefaultAnnualRate: d(0.02),
	}
}

// LastKnownYear returns the highest year present in the series, or zero when
// the series is empty.
func (t *CPITable) LastKnownYear() int {
	last := 0
	for y := range t.Series {
		if y > last {
			last = y
		}
	}
	return last
}

// FirstKnownYear returns the lowest year present in the series.
func (t *CPITable) FirstKnownYear() int {
	years := make([]int, 0, len(t.Series))
	for y := range t.Series {
		years = append(years, y)
	}
	if len(years) == 0 {
		return 0
	}
	sort.Ints(years)
	return years[0]
}

// Index returns CPI(year): a direct lookup when the year is in the series,
// otherwise a geometric extrapolation from the nearest known year at the
// default annual rate.
func (t *CPITable) Index(year int) decimal.Decimal {
	if v, ok := t.Series[year]; ok {
		return v
	}
	if len(t.Series) == 0 {
		return decimal.NewFromInt(1)
	}
	one := decimal.NewFromInt(1)
	growth := one.Add(t.DefaultAnnualRate)
	if last := t.LastKnownYear(); year > last {
		return t.Series[last].Mul(growth.Pow(decimal.NewFromInt(int64(year - last))))
	}
	first := t.FirstKnownYear()
	return t.Series[first].Div(growth.Pow(decimal.NewFromInt(int64(first - year))))
}
