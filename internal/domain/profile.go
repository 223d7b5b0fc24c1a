package domain

import "github.com/shopspring/decimal"

// Profile is a saved set of calculation inputs, loaded from a YAML or JSON file
type Profile struct {
	Name                   string                              `yaml:"name" json:"name"`
	TaxYear                int                                 `yaml:"tax_year" json:"taxYear"`
	FilingStatus           FilingStatus                        `yaml:"filing_status" json:"filingStatus"`
	GrossIncome            decimal.Decimal                     `yaml:"gross_income" json:"grossIncome"`
	BusinessExpenses       decimal.Decimal                     `yaml:"business_expenses" json:"businessExpenses"`
	Dependents             int                                 `yaml:"dependents" json:"dependents"`
	RetirementContribution decimal.Decimal                     `yaml:"retirement_contribution" json:"retirementContribution"`
	InsuranceContribution  decimal.Decimal                     `yaml:"insurance_contribution" json:"insuranceContribution"`
	YTDWithheld            decimal.Decimal                     `yaml:"ytd_withheld" json:"ytdWithheld"`
	Revenue                decimal.Decimal                     `yaml:"revenue" json:"revenue"`
	Expenses               map[ExpenseCategory]decimal.Decimal `yaml:"expenses" json:"expenses"`
}

// ComparisonInput extracts the scenario inputs of the profile
func (p *Profile) ComparisonInput() ComparisonInput {
	return ComparisonInput{
		GrossIncome:            p.GrossIncome,
		BusinessExpenses:       p.BusinessExpenses,
		FilingStatus:           p.FilingStatus,
		Dependents:             p.Dependents,
		RetirementContribution: p.RetirementContribution,
		InsuranceContribution:  p.InsuranceContribution,
	}
}
