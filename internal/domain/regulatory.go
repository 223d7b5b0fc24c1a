package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxYearRules contains all regulatory data for one tax year.
// It is loaded from YAML once and never mutated afterwards.
type TaxYearRules struct {
	TaxYear                    int                              `yaml:"tax_year" json:"taxYear"`
	Description                string                           `yaml:"description" json:"description"`
	StandardDeduction          map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	Brackets                   map[FilingStatus]BracketTable    `yaml:"brackets" json:"brackets"`
	FICA                       FICARules                        `yaml:"fica" json:"fica"`
	SelfEmployment             SelfEmploymentRules              `yaml:"self_employment" json:"selfEmployment"`
	ChildTaxCreditPerDependent decimal.Decimal                  `yaml:"child_tax_credit_per_dependent" json:"childTaxCreditPerDependent"`
	Quarterly                  QuarterlyRules                   `yaml:"quarterly" json:"quarterly"`
	Expenses                   ExpenseRules                     `yaml:"expenses" json:"expenses"`
}

// FICARules contains employee-side FICA rules
type FICARules struct {
	SocialSecurityRate           decimal.Decimal                  `yaml:"social_security_rate" json:"socialSecurityRate"`
	SocialSecurityWageBase       decimal.Decimal                  `yaml:"social_security_wage_base" json:"socialSecurityWageBase"`
	MedicareRate                 decimal.Decimal                  `yaml:"medicare_rate" json:"medicareRate"`
	AdditionalMedicareRate       decimal.Decimal                  `yaml:"additional_medicare_rate" json:"additionalMedicareRate"`
	AdditionalMedicareThresholds map[FilingStatus]decimal.Decimal `yaml:"additional_medicare_thresholds" json:"additionalMedicareThresholds"`
}

// SelfEmploymentRules contains SE tax parameters
type SelfEmploymentRules struct {
	NetEarningsFactor decimal.Decimal `yaml:"net_earnings_factor" json:"netEarningsFactor"` // 0.9235
	TaxRate           decimal.Decimal `yaml:"tax_rate" json:"taxRate"`                      // 0.153
	DeductibleShare   decimal.Decimal `yaml:"deductible_share" json:"deductibleShare"`      // 0.5
}

// QuarterlyRules contains estimated payment parameters
type QuarterlyRules struct {
	DueDates        []string        `yaml:"due_dates" json:"dueDates"`
	SafeHarborRatio decimal.Decimal `yaml:"safe_harbor_ratio" json:"safeHarborRatio"`
}

// ExpenseRules contains the expense benchmark and recommendation tables
type ExpenseRules struct {
	Benchmarks          []ExpenseBenchmark  `yaml:"benchmarks" json:"benchmarks"`
	ToleranceFactor     decimal.Decimal     `yaml:"tolerance_factor" json:"toleranceFactor"`
	Recommendations     []PlanningAllowance `yaml:"recommendations" json:"recommendations"`
	AssumedMarginalRate decimal.Decimal     `yaml:"assumed_marginal_rate" json:"assumedMarginalRate"`
	MaxDeductibleShare  decimal.Decimal     `yaml:"max_deductible_share" json:"maxDeductibleShare"`
	Tips                []string            `yaml:"tips" json:"tips"`
}

// ExpenseBenchmark is a target share of revenue for one category
type ExpenseBenchmark struct {
	Category ExpenseCategory `yaml:"category" json:"category"`
	Ratio    decimal.Decimal `yaml:"ratio" json:"ratio"`
}

// PlanningAllowance is a suggested share of revenue for a deductible category
type PlanningAllowance struct {
	Category    string          `yaml:"category" json:"category"`
	Percentage  decimal.Decimal `yaml:"percentage" json:"percentage"`
	Description string          `yaml:"description" json:"description"`
}

// BracketsFor returns the bracket table for a filing status
func (r *TaxYearRules) BracketsFor(status FilingStatus) (BracketTable, error) {
	if !status.IsValid() {
		return nil, NewInputError("filing_status", fmt.Sprintf("%q is not a recognized filing status", status))
	}
	table, ok := r.Brackets[status]
	if !ok || len(table) == 0 {
		return nil, NewInputError("filing_status", fmt.Sprintf("no %d bracket table for %s", r.TaxYear, status))
	}
	return table, nil
}

// StandardDeductionFor returns the standard deduction for a filing status
func (r *TaxYearRules) StandardDeductionFor(status FilingStatus) (decimal.Decimal, error) {
	if !status.IsValid() {
		return decimal.Zero, NewInputError("filing_status", fmt.Sprintf("%q is not a recognized filing status", status))
	}
	ded, ok := r.StandardDeduction[status]
	if !ok {
		return decimal.Zero, NewInputError("filing_status", fmt.Sprintf("no %d standard deduction for %s", r.TaxYear, status))
	}
	return ded, nil
}

// AdditionalMedicareThresholdFor returns the additional Medicare threshold for a filing status
func (f FICARules) AdditionalMedicareThresholdFor(status FilingStatus) (decimal.Decimal, error) {
	thr, ok := f.AdditionalMedicareThresholds[status]
	if !ok {
		return decimal.Zero, NewInputError("filing_status", fmt.Sprintf("no additional medicare threshold for %s", status))
	}
	return thr, nil
}

// Benchmark returns the benchmark ratio for a category
func (er ExpenseRules) Benchmark(category ExpenseCategory) (decimal.Decimal, bool) {
	for _, b := range er.Benchmarks {
		if b.Category == category {
			return b.Ratio, true
		}
	}
	return decimal.Zero, false
}
