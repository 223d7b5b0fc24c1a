package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of profile input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML file, or from a JSON request body
// when the file has a .json extension
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile *domain.Profile
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		profile, err = ParseProfileJSON(data)
		if err != nil {
			return nil, err
		}
	} else {
		profile, err = ip.ParseYAML(data)
		if err != nil {
			return nil, err
		}
	}

	if err := ip.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return profile, nil
}

// ParseYAML decodes a YAML profile without validating it
func (ip *InputParser) ParseYAML(data []byte) (*domain.Profile, error) {
	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if profile.FilingStatus != "" {
		status, err := domain.ParseFilingStatus(string(profile.FilingStatus))
		if err != nil {
			return nil, err
		}
		profile.FilingStatus = status
	}
	if len(profile.Expenses) > 0 {
		expenses := make(map[domain.ExpenseCategory]decimal.Decimal, len(profile.Expenses))
		for key, amount := range profile.Expenses {
			category, err := domain.ParseExpenseCategory(string(key))
			if err != nil {
				return nil, err
			}
			if _, dup := expenses[category]; dup {
				return nil, domain.NewInputError("expenses", fmt.Sprintf("duplicate category %q", category))
			}
			expenses[category] = amount
		}
		profile.Expenses = expenses
	}
	return &profile, nil
}

// ValidateProfile validates a loaded profile and fills the default tax year
func (ip *InputParser) ValidateProfile(profile *domain.Profile) error {
	if profile.TaxYear == 0 {
		profile.TaxYear = DefaultTaxYear
	}
	if profile.TaxYear < 0 {
		return domain.NewInputError("tax_year", "cannot be negative")
	}
	if !profile.FilingStatus.IsValid() {
		return domain.NewInputError("filing_status", fmt.Sprintf("%q is not a recognized filing status", profile.FilingStatus))
	}
	if profile.Dependents < 0 {
		return domain.NewInputError("dependents", "cannot be negative")
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"gross_income", profile.GrossIncome},
		{"business_expenses", profile.BusinessExpenses},
		{"retirement_contribution", profile.RetirementContribution},
		{"insurance_contribution", profile.InsuranceContribution},
		{"ytd_withheld", profile.YTDWithheld},
		{"revenue", profile.Revenue},
	}
	for _, a := range amounts {
		if a.value.LessThan(decimal.Zero) {
			return domain.NewInputError(a.field, "cannot be negative")
		}
	}

	for category, amount := range profile.Expenses {
		if !category.IsValid() {
			return domain.NewInputError("expenses", fmt.Sprintf("unknown expense category %q", category))
		}
		if amount.LessThan(decimal.Zero) {
			return domain.NewInputError("expenses."+string(category), "cannot be negative")
		}
	}
	return nil
}
