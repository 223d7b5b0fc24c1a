package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embedded2024(t *testing.T) string {
	t.Helper()
	data, err := embeddedRules.ReadFile("rules/2024.yaml")
	require.NoError(t, err)
	return string(data)
}

func TestRulesForYear(t *testing.T) {
	assert.Equal(t, []int{2024, 2025}, AvailableYears())

	rules, err := RulesForYear(2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, rules.TaxYear)
	assert.True(t, rules.StandardDeduction[domain.FilingMarriedJointly].Equal(decimal.NewFromInt(29200)))

	again, err := RulesForYear(2024)
	require.NoError(t, err)
	assert.Same(t, rules, again, "Registry is loaded once and shared")

	_, err = RulesForYear(1999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "1999")
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, DefaultTaxYear, rules.TaxYear)

	single, err := rules.BracketsFor(domain.FilingSingle)
	require.NoError(t, err)
	assert.Len(t, single, 7)
	assert.True(t, single[len(single)-1].IsUnbounded())
	assert.True(t, single.TopRate().Equal(decimal.NewFromFloat(0.37)))
}

func TestEmbeddedRulesAreConsistent(t *testing.T) {
	for _, year := range AvailableYears() {
		rules, err := RulesForYear(year)
		require.NoError(t, err)
		assert.Len(t, rules.Expenses.Benchmarks, len(domain.ExpenseCategories), "year %d", year)
		assert.Len(t, rules.Quarterly.DueDates, 4, "year %d", year)
	}
}

func TestParseRules_Invalid(t *testing.T) {
	base := embedded2024(t)

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{"missing year", "tax_year: 2024", "tax_year: 0", "tax_year is required"},
		{"non increasing bounds", "{ upper_bound: 47150, rate: 0.12 }", "{ upper_bound: 11000, rate: 0.12 }", "brackets single"},
		{"rate above one", "{ upper_bound: 100525, rate: 0.22 }", "{ upper_bound: 100525, rate: 2.2 }", "brackets single"},
		{"unbounded middle", "{ upper_bound: 94300, rate: 0.12 }", "{ rate: 0.12 }", "brackets married_jointly"},
		{"unknown status", "  head_of_household: 21900", "  widowed: 21900", "unknown filing status"},
		{"tolerance below one", "tolerance_factor: 1.2", "tolerance_factor: 0.8", "tolerance_factor"},
		{"unknown benchmark", "{ category: travel, ratio: 0.05 }", "{ category: yachts, ratio: 0.05 }", "yachts"},
		{"missing benchmark", "    - { category: travel, ratio: 0.05 }\n", "", `missing category "travel"`},
		{"bad fraction", "safe_harbor_ratio: 0.9", "safe_harbor_ratio: 1.9", "quarterly.safe_harbor_ratio"},
		{"three due dates", "    - \"June 15\"\n", "", "4 dates"},
		{"not yaml", base, "brackets: [unclosed", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, base, tt.from)
			doc := strings.Replace(base, tt.from, tt.to, 1)
			_, err := ParseRules([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRulesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := strings.Replace(embedded2024(t), "tax_year: 2024", "tax_year: 2030", 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	rules, err := LoadRulesFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2030, rules.TaxYear)

	_, err = LoadRulesFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
