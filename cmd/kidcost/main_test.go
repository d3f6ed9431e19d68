package main

import (
	"testing"

	"github.com/kidcost/kidcost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDecideIndexPolicies(t *testing.T) {
	ev := domain.CostEvent{
		Options: []domain.DecisionOption{
			{Label: "mid", OneTimeCost: decimal.NewFromInt(4800)},
			{Label: "low", OneTimeCost: decimal.NewFromInt(2400)},
			{Label: "high", OneTimeCost: decimal.NewFromInt(9000)},
		},
	}

	tests := []struct {
		policy   string
		expected int
	}{
		{"cheapest", 1},
		{"expensive", 2},
		{"median", 1}, // positional middle of the listed options
		{"", 1},       // unknown policies fall back to cheapest
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, decideIndex(ev, tt.policy), "policy %q", tt.policy)
	}
}
