package config

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultTaxYear is the year used when no year is requested
const DefaultTaxYear = 2024

//go:embed rules/*.yaml
var embeddedRules embed.FS

var (
	registryOnce sync.Once
	registry     map[int]*domain.TaxYearRules
	registryErr  error
)

// loadRegistry parses every embedded rules file exactly once
func loadRegistry() (map[int]*domain.TaxYearRules, error) {
	registryOnce.Do(func() {
		entries, err := embeddedRules.ReadDir("rules")
		if err != nil {
			registryErr = fmt.Errorf("failed to list embedded rules: %w", err)
			return
		}
		loaded := make(map[int]*domain.TaxYearRules, len(entries))
		for _, entry := range entries {
			data, err := embeddedRules.ReadFile("rules/" + entry.Name())
			if err != nil {
				registryErr = fmt.Errorf("failed to read embedded rules %s: %w", entry.Name(), err)
				return
			}
			rules, err := ParseRules(data)
			if err != nil {
				registryErr = fmt.Errorf("embedded rules %s: %w", entry.Name(), err)
				return
			}
			if _, dup := loaded[rules.TaxYear]; dup {
				registryErr = fmt.Errorf("embedded rules %s: duplicate tax year %d", entry.Name(), rules.TaxYear)
				return
			}
			loaded[rules.TaxYear] = rules
		}
		registry = loaded
	})
	return registry, registryErr
}

// RulesForYear returns the shared, read-only rules for a tax year.
// Callers must not modify the returned value.
func RulesForYear(year int) (*domain.TaxYearRules, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	rules, ok := reg[year]
	if !ok {
		return nil, domain.NewInputError("tax_year", fmt.Sprintf("no rules for tax year %d (available: %v)", year, availableYears(reg)))
	}
	return rules, nil
}

// DefaultRules returns the rules for DefaultTaxYear
func DefaultRules() *domain.TaxYearRules {
	rules, err := RulesForYear(DefaultTaxYear)
	if err != nil {
		panic(fmt.Sprintf("embedded %d tax rules are invalid: %v", DefaultTaxYear, err))
	}
	return rules
}

// AvailableYears lists the embedded tax years in ascending order
func AvailableYears() []int {
	reg, err := loadRegistry()
	if err != nil {
		return nil
	}
	return availableYears(reg)
}

func availableYears(reg map[int]*domain.TaxYearRules) []int {
	years := make([]int, 0, len(reg))
	for y := range reg {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// LoadRulesFromFile loads a user supplied rules file with the embedded schema
func LoadRulesFromFile(filename string) (*domain.TaxYearRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", filename, err)
	}
	return rules, nil
}

// ParseRules decodes and validates a rules document
func ParseRules(data []byte) (*domain.TaxYearRules, error) {
	var rules domain.TaxYearRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// ValidateRules checks a rules document for completeness and consistency
func ValidateRules(rules *domain.TaxYearRules) error {
	if rules.TaxYear <= 0 {
		return fmt.Errorf("tax_year is required")
	}
	one := decimal.NewFromInt(1)

	for status := range rules.StandardDeduction {
		if !status.IsValid() {
			return fmt.Errorf("standard_deduction: unknown filing status %q", status)
		}
	}
	for status := range rules.Brackets {
		if !status.IsValid() {
			return fmt.Errorf("brackets: unknown filing status %q", status)
		}
	}
	for _, status := range domain.FilingStatuses {
		ded, ok := rules.StandardDeduction[status]
		if !ok {
			return fmt.Errorf("standard_deduction: missing %s", status)
		}
		if ded.LessThan(decimal.Zero) {
			return fmt.Errorf("standard_deduction: %s cannot be negative", status)
		}
		table, ok := rules.Brackets[status]
		if !ok {
			return fmt.Errorf("brackets: missing %s", status)
		}
		if err := table.Validate(); err != nil {
			return fmt.Errorf("brackets %s: %w", status, err)
		}
		if _, ok := rules.FICA.AdditionalMedicareThresholds[status]; !ok {
			return fmt.Errorf("fica.additional_medicare_thresholds: missing %s", status)
		}
	}

	fractions := map[string]decimal.Decimal{
		"fica.social_security_rate":           rules.FICA.SocialSecurityRate,
		"fica.medicare_rate":                  rules.FICA.MedicareRate,
		"fica.additional_medicare_rate":       rules.FICA.AdditionalMedicareRate,
		"self_employment.net_earnings_factor": rules.SelfEmployment.NetEarningsFactor,
		"self_employment.tax_rate":            rules.SelfEmployment.TaxRate,
		"self_employment.deductible_share":    rules.SelfEmployment.DeductibleShare,
		"quarterly.safe_harbor_ratio":         rules.Quarterly.SafeHarborRatio,
		"expenses.assumed_marginal_rate":      rules.Expenses.AssumedMarginalRate,
		"expenses.max_deductible_share":       rules.Expenses.MaxDeductibleShare,
	}
	for name, v := range fractions {
		if v.LessThan(decimal.Zero) || v.GreaterThan(one) {
			return fmt.Errorf("%s must be between 0 and 1, got %s", name, v.String())
		}
	}
	if rules.FICA.SocialSecurityWageBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("fica.social_security_wage_base must be positive")
	}
	if rules.ChildTaxCreditPerDependent.LessThan(decimal.Zero) {
		return fmt.Errorf("child_tax_credit_per_dependent cannot be negative")
	}
	if len(rules.Quarterly.DueDates) != 4 {
		return fmt.Errorf("quarterly.due_dates must list 4 dates, got %d", len(rules.Quarterly.DueDates))
	}
	if rules.Expenses.ToleranceFactor.LessThan(one) {
		return fmt.Errorf("expenses.tolerance_factor must be at least 1")
	}

	seen := make(map[domain.ExpenseCategory]bool)
	for _, b := range rules.Expenses.Benchmarks {
		if !b.Category.IsValid() {
			return fmt.Errorf("expenses.benchmarks: unknown category %q", b.Category)
		}
		if seen[b.Category] {
			return fmt.Errorf("expenses.benchmarks: duplicate category %q", b.Category)
		}
		seen[b.Category] = true
		if b.Ratio.LessThan(decimal.Zero) || b.Ratio.GreaterThan(one) {
			return fmt.Errorf("expenses.benchmarks %s: ratio must be between 0 and 1", b.Category)
		}
	}
	for _, c := range domain.ExpenseCategories {
		if !seen[c] {
			return fmt.Errorf("expenses.benchmarks: missing category %q", c)
		}
	}
	for _, r := range rules.Expenses.Recommendations {
		if r.Category == "" {
			return fmt.Errorf("expenses.recommendations: category is required")
		}
		if r.Percentage.LessThan(decimal.Zero) || r.Percentage.GreaterThan(one) {
			return fmt.Errorf("expenses.recommendations %s: percentage must be between 0 and 1", r.Category)
		}
	}
	return nil
}
