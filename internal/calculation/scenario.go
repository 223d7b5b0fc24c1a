package calculation

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// childTaxCredit is non-refundable and capped at the computed income tax.
// This simplifies the partially refundable credit.
func (ce *CalculationEngine) childTaxCredit(dependents int, incomeTax decimal.Decimal) decimal.Decimal {
	credit := ce.Rules.ChildTaxCreditPerDependent.Mul(decimal.NewFromInt(int64(dependents)))
	return decimal.Min(credit, incomeTax)
}

// ComputeW2Scenario computes income tax, employee FICA and the child tax
// credit for a W-2 employee
func (ce *CalculationEngine) ComputeW2Scenario(grossIncome decimal.Decimal, status domain.FilingStatus, dependents int) (*domain.W2ScenarioResult, error) {
	if err := requireNonNegative("gross_income", grossIncome); err != nil {
		return nil, ce.reject(err)
	}
	if err := requireDependents(dependents); err != nil {
		return nil, ce.reject(err)
	}

	it, err := ce.computeIncomeTax(grossIncome, status)
	if err != nil {
		return nil, ce.reject(err)
	}
	fica, err := ce.FICACalc.CalculateFICA(grossIncome, status)
	if err != nil {
		return nil, ce.reject(err)
	}

	tax := liability(it.exact)
	credit := ce.childTaxCredit(dependents, tax)
	total := tax.Add(fica.Total).Sub(credit)

	ce.debugf("w2: gross=%s income_tax=%s fica=%s credit=%s total=%s",
		grossIncome.String(), tax.String(), fica.Total.String(), credit.String(), total.String())

	return &domain.W2ScenarioResult{
		FilingStatus:      status,
		TaxYear:           ce.Rules.TaxYear,
		Dependents:        dependents,
		GrossIncome:       grossIncome,
		StandardDeduction: it.standardDeduction,
		TaxableIncome:     it.taxableIncome,
		IncomeTax:         tax,
		FICA:              fica,
		ChildTaxCredit:    credit,
		TotalTax:          total,
		EffectiveRate:     ratio(total, grossIncome),
		MarginalRate:      marginalRate(it.contributions),
		TakeHomePay:       grossIncome.Sub(total),
		BracketDetails:    it.contributions,
	}, nil
}

func validateSelfEmploymentInput(in domain.SelfEmploymentInput) error {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"gross_income", in.GrossIncome},
		{"business_expenses", in.BusinessExpenses},
		{"retirement_contribution", in.RetirementContribution},
		{"insurance_contribution", in.InsuranceContribution},
	}
	for _, a := range amounts {
		if err := requireNonNegative(a.field, a.value); err != nil {
			return err
		}
	}
	if err := requireDependents(in.Dependents); err != nil {
		return err
	}
	if !in.FilingStatus.IsValid() {
		return domain.NewInputError("filing_status", "\""+string(in.FilingStatus)+"\" is not a recognized filing status")
	}
	return nil
}

// ComputeSelfEmploymentScenario computes SE tax, the SE tax deduction, AGI
// adjustments and income tax for a self-employed filer. Business expenses
// above gross income are capped so net income never goes negative.
func (ce *CalculationEngine) ComputeSelfEmploymentScenario(in domain.SelfEmploymentInput) (*domain.SelfEmploymentResult, error) {
	if err := validateSelfEmploymentInput(in); err != nil {
		return nil, ce.reject(err)
	}

	expenses := decimal.Min(in.BusinessExpenses, in.GrossIncome)
	if expenses.LessThan(in.BusinessExpenses) {
		ce.Logger.Infof("business expenses %s capped at gross income %s", in.BusinessExpenses.String(), in.GrossIncome.String())
	}
	netIncome := in.GrossIncome.Sub(expenses)

	se := ce.Rules.SelfEmployment
	seBase := netIncome.Mul(se.NetEarningsFactor)
	seTax := liability(seBase.Mul(se.TaxRate))
	seDeduction := seTax.Mul(se.DeductibleShare).Round(2)
	agi := netIncome.Sub(seDeduction).Sub(in.RetirementContribution)

	it, err := ce.computeIncomeTax(agi, in.FilingStatus)
	if err != nil {
		return nil, ce.reject(err)
	}

	tax := liability(it.exact)
	credit := ce.childTaxCredit(in.Dependents, tax)
	total := tax.Add(seTax).Sub(credit)
	takeHome := in.GrossIncome.Sub(expenses).Sub(total).Sub(in.InsuranceContribution).Sub(in.RetirementContribution)

	ce.debugf("self-employment: net=%s se_base=%s se_tax=%s deduction=%s agi=%s income_tax=%s total=%s",
		netIncome.String(), seBase.String(), seTax.String(), seDeduction.String(), agi.String(), tax.String(), total.String())

	return &domain.SelfEmploymentResult{
		FilingStatus:           in.FilingStatus,
		TaxYear:                ce.Rules.TaxYear,
		Dependents:             in.Dependents,
		GrossIncome:            in.GrossIncome,
		BusinessExpenses:       expenses,
		NetIncome:              netIncome,
		SETaxableBase:          seBase,
		SelfEmploymentTax:      seTax,
		SETaxDeduction:         seDeduction,
		RetirementContribution: in.RetirementContribution,
		InsuranceContribution:  in.InsuranceContribution,
		AGI:                    agi,
		StandardDeduction:      it.standardDeduction,
		TaxableIncome:          it.taxableIncome,
		IncomeTax:              tax,
		ChildTaxCredit:         credit,
		TotalTax:               total,
		EffectiveRate:          ratio(total, in.GrossIncome),
		MarginalRate:           marginalRate(it.contributions),
		TakeHomePay:            takeHome,
		QuarterlyPayment:       total.Div(decimal.NewFromInt(4)),
		BracketDetails:         it.contributions,
	}, nil
}
