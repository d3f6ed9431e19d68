package rates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a YAML rates file and overlays it on the embedded 2025
// defaults, so a partial file overrides only the sections it names.
func LoadFromFile(filename string) (*Tables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", filename, err)
	}

	tables := NewTables2025()
	if err := yaml.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("failed to parse rates YAML: %w", err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("rates validation failed: %w", err)
	}
	return tables, nil
}

// Validate checks structural soundness of the tables.
func (t *Tables) Validate() error {
	if len(t.Tax.Brackets) == 0 {
		return fmt.Errorf("tax brackets are required")
	}
	prev := t.Tax.Brackets[0]
	if !prev.Min.IsZero() {
		return fmt.Errorf("lowest tax bracket must start at 0")
	}
	for i := 1; i < len(t.Tax.Brackets); i++ {
		b := t.Tax.Brackets[i]
		if !b.Min.Equal(prev.Max) {
			return fmt.Errorf("tax bracket %d is not contiguous", i)
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("tax bracket %d has non-positive width", i)
		}
		prev = b
	}
	for i := 1; i < len(t.Benefits.ChildcareAdditionalTiers); i++ {
		if !t.Benefits.ChildcareAdditionalTiers[i].Ceiling.GreaterThan(t.Benefits.ChildcareAdditionalTiers[i-1].Ceiling) {
			return fmt.Errorf("childcare subsidy tier %d ceilings must be increasing", i)
		}
	}
	if t.Fees.ReferenceYear == 0 {
		return fmt.Errorf("fee table reference year is required")
	}
	if len(t.CPI.Series) == 0 {
		return fmt.Errorf("CPI series is required")
	}
	return nil
}
