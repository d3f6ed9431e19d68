package output

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/kidcost/kidcost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "S$0"},
		{"1360", "S$1,360"},
		{"1234567.891", "S$1,234,567.89"},
		{"-250.5", "S$-250.5"},
	}
	for _, tt := range tests {
		got := FormatCurrency(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.expected, got)
	}
}

func sampleSnapshot() *domain.LedgerSnapshot {
	return &domain.LedgerSnapshot{
		HouseholdSavings: decimal.NewFromInt(42000),
		TotalExpenditure: decimal.NewFromInt(185000),
		TotalBenefits:    decimal.NewFromInt(24000),
		PerCategory: map[domain.CostCategory]decimal.Decimal{
			domain.CategoryEducation: decimal.NewFromInt(120000),
			domain.CategoryMedical:   decimal.NewFromInt(9000),
		},
		PerStage: map[domain.GrowthStage]decimal.Decimal{
			domain.StagePrimary: decimal.NewFromInt(60000),
		},
		DecisionsLog: []domain.DecisionRecord{
			{AgeMonths: 0, EventTitle: "Wei arrives", Option: "Public hospital, ward B1",
				Cost: decimal.NewFromInt(2400), Benefit: decimal.NewFromInt(24000)},
			{AgeMonths: 36, EventTitle: "Kindergarten choice", Option: "MOE kindergarten (registration)",
				Cost: decimal.NewFromInt(170)},
		},
		AgeMonths: 276,
		Result:    domain.ResultReachedAdulthood,
	}
}

func TestWriteConsoleReport(t *testing.T) {
	var sb strings.Builder
	WriteConsoleReport(&sb, sampleSnapshot())
	out := sb.String()

	assert.Contains(t, out, "child reached adulthood")
	assert.Contains(t, out, "S$185,000")
	assert.Contains(t, out, "Wei arrives")
	assert.Contains(t, out, "276 months (23.0 years)")
}

func TestFormatCSV(t *testing.T) {
	data, err := FormatCSV(sampleSnapshot())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AgeMonths,Event,Option,Cost,Benefit", lines[0])
	assert.Contains(t, lines[1], "Wei arrives")
	assert.Contains(t, lines[1], "2400.00")
	assert.Contains(t, lines[2], "170.00")
}

func TestFormatJSON(t *testing.T) {
	data, err := FormatJSON(sampleSnapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "reachedAdulthood", decoded["result"])
	assert.Equal(t, float64(276), decoded["ageMonths"])
}
