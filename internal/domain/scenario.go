package domain

import "github.com/shopspring/decimal"

// FICABreakdown holds the employee-side FICA line items
type FICABreakdown struct {
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	AdditionalMedicare decimal.Decimal `json:"additionalMedicare"`
	Total              decimal.Decimal `json:"total"`
}

// W2ScenarioResult is the complete tax picture for a W-2 employee
type W2ScenarioResult struct {
	FilingStatus      FilingStatus          `json:"filingStatus"`
	TaxYear           int                   `json:"taxYear"`
	Dependents        int                   `json:"dependents"`
	GrossIncome       decimal.Decimal       `json:"grossIncome"`
	StandardDeduction decimal.Decimal       `json:"standardDeduction"`
	TaxableIncome     decimal.Decimal       `json:"taxableIncome"`
	IncomeTax         decimal.Decimal       `json:"incomeTax"`
	FICA              FICABreakdown         `json:"fica"`
	ChildTaxCredit    decimal.Decimal       `json:"childTaxCredit"`
	TotalTax          decimal.Decimal       `json:"totalTax"`
	EffectiveRate     decimal.Decimal       `json:"effectiveRate"` // fraction of gross income
	MarginalRate      decimal.Decimal       `json:"marginalRate"`  // fraction
	TakeHomePay       decimal.Decimal       `json:"takeHomePay"`
	BracketDetails    []BracketContribution `json:"bracketDetails"`
}

// SelfEmploymentInput gathers the inputs of the self-employment scenario
type SelfEmploymentInput struct {
	GrossIncome            decimal.Decimal
	BusinessExpenses       decimal.Decimal
	FilingStatus           FilingStatus
	Dependents             int
	RetirementContribution decimal.Decimal // SEP-IRA style, reduces AGI
	InsuranceContribution  decimal.Decimal // wealth policy premium, reduces take-home only
}

// SelfEmploymentResult is the complete tax picture for a self-employed filer
type SelfEmploymentResult struct {
	FilingStatus           FilingStatus          `json:"filingStatus"`
	TaxYear                int                   `json:"taxYear"`
	Dependents             int                   `json:"dependents"`
	GrossIncome            decimal.Decimal       `json:"grossIncome"`
	BusinessExpenses       decimal.Decimal       `json:"businessExpenses"` // as applied, capped at gross income
	NetIncome              decimal.Decimal       `json:"netIncome"`
	SETaxableBase          decimal.Decimal       `json:"seTaxableBase"`
	SelfEmploymentTax      decimal.Decimal       `json:"selfEmploymentTax"`
	SETaxDeduction         decimal.Decimal       `json:"seTaxDeduction"`
	RetirementContribution decimal.Decimal       `json:"retirementContribution"`
	InsuranceContribution  decimal.Decimal       `json:"insuranceContribution"`
	AGI                    decimal.Decimal       `json:"agi"`
	StandardDeduction      decimal.Decimal       `json:"standardDeduction"`
	TaxableIncome          decimal.Decimal       `json:"taxableIncome"`
	IncomeTax              decimal.Decimal       `json:"incomeTax"`
	ChildTaxCredit         decimal.Decimal       `json:"childTaxCredit"`
	TotalTax               decimal.Decimal       `json:"totalTax"`
	EffectiveRate          decimal.Decimal       `json:"effectiveRate"` // fraction of gross income
	MarginalRate           decimal.Decimal       `json:"marginalRate"`  // fraction
	TakeHomePay            decimal.Decimal       `json:"takeHomePay"`
	QuarterlyPayment       decimal.Decimal       `json:"quarterlyPayment"`
	BracketDetails         []BracketContribution `json:"bracketDetails"`
}

// ComparisonInput is the shared input of both scenarios in a comparison
type ComparisonInput struct {
	GrossIncome            decimal.Decimal
	BusinessExpenses       decimal.Decimal
	FilingStatus           FilingStatus
	Dependents             int
	RetirementContribution decimal.Decimal
	InsuranceContribution  decimal.Decimal
}

// SelfEmployment returns the self-employment view of the comparison input
func (ci ComparisonInput) SelfEmployment() SelfEmploymentInput {
	return SelfEmploymentInput{
		GrossIncome:            ci.GrossIncome,
		BusinessExpenses:       ci.BusinessExpenses,
		FilingStatus:           ci.FilingStatus,
		Dependents:             ci.Dependents,
		RetirementContribution: ci.RetirementContribution,
		InsuranceContribution:  ci.InsuranceContribution,
	}
}

// ComparisonResult pairs a W-2 and a self-employment scenario on the same gross income
type ComparisonResult struct {
	W2                   *W2ScenarioResult     `json:"w2Scenario"`
	SelfEmployment       *SelfEmploymentResult `json:"selfEmploymentScenario"`
	TaxDifference        decimal.Decimal       `json:"taxDifference"`        // SE minus W-2
	TakeHomeDifference   decimal.Decimal       `json:"takeHomeDifference"`   // SE minus W-2
	TaxDifferencePercent decimal.Decimal       `json:"taxDifferencePercent"` // percent of W-2 total tax
	Learnings            []string              `json:"keyLearnings"`
	QuarterlySchedule    *QuarterlyPlan        `json:"quarterlyPaymentSchedule"`
}
