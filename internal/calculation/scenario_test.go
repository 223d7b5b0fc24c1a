package calculation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceSelfEmploymentInput() domain.SelfEmploymentInput {
	return domain.SelfEmploymentInput{
		GrossIncome:      dec("85000"),
		BusinessExpenses: dec("12000"),
		FilingStatus:     domain.FilingMarriedJointly,
		Dependents:       2,
	}
}

func TestComputeSelfEmploymentScenario_ReferenceChain(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.ComputeSelfEmploymentScenario(referenceSelfEmploymentInput())
	require.NoError(t, err)

	assertDecimal(t, "net income", "73000", result.NetIncome)
	assertDecimal(t, "se base", "67415.5", result.SETaxableBase)
	assertDecimal(t, "se tax", "10314.58", result.SelfEmploymentTax)
	assertDecimal(t, "se deduction", "5157.29", result.SETaxDeduction)
	assertDecimal(t, "agi", "67842.71", result.AGI)
	assertDecimal(t, "standard deduction", "29200", result.StandardDeduction)
	assertDecimal(t, "taxable", "38642.71", result.TaxableIncome)
	assertDecimal(t, "income tax", "4173.13", result.IncomeTax)
	assertDecimal(t, "child credit", "4000", result.ChildTaxCredit)
	assertDecimal(t, "total tax", "10487.71", result.TotalTax)
	assertDecimal(t, "take home", "62512.29", result.TakeHomePay)
	assertDecimal(t, "quarterly", "2621.9275", result.QuarterlyPayment)
	assertDecimal(t, "marginal", "0.12", result.MarginalRate)
	assert.Len(t, result.BracketDetails, 2)
}

func TestComputeW2Scenario_ReferenceInputs(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.ComputeW2Scenario(dec("85000"), domain.FilingMarriedJointly, 2)
	require.NoError(t, err)

	assertDecimal(t, "taxable", "55800", result.TaxableIncome)
	assertDecimal(t, "income tax", "6232", result.IncomeTax)
	assertDecimal(t, "social security", "5270", result.FICA.SocialSecurity)
	assertDecimal(t, "medicare", "1232.5", result.FICA.Medicare)
	assertDecimal(t, "additional medicare", "0", result.FICA.AdditionalMedicare)
	assertDecimal(t, "fica", "6502.5", result.FICA.Total)
	assertDecimal(t, "credit", "4000", result.ChildTaxCredit)
	assertDecimal(t, "total", "8734.5", result.TotalTax)
	assertDecimal(t, "take home", "76265.5", result.TakeHomePay)
}

func TestComputeW2Scenario_HighIncomeFICA(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.ComputeW2Scenario(dec("250000"), domain.FilingSingle, 0)
	require.NoError(t, err)

	assertDecimal(t, "social security capped at wage base", "10453.2", result.FICA.SocialSecurity)
	assertDecimal(t, "medicare", "3625", result.FICA.Medicare)
	assertDecimal(t, "additional medicare", "450", result.FICA.AdditionalMedicare)

	joint, err := engine.ComputeW2Scenario(dec("250000"), domain.FilingMarriedJointly, 0)
	require.NoError(t, err)
	assert.True(t, joint.FICA.AdditionalMedicare.IsZero(), "Joint threshold is 250,000")
}

func TestComputeW2Scenario_ChildCreditCappedAtIncomeTax(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.ComputeW2Scenario(dec("20000"), domain.FilingSingle, 3)
	require.NoError(t, err)

	assertDecimal(t, "income tax", "540", result.IncomeTax)
	assertDecimal(t, "credit", "540", result.ChildTaxCredit)
	assert.True(t, result.TotalTax.Equal(result.FICA.Total), "Credit is non-refundable")
}

func TestComputeW2Scenario_ZeroIncome(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.ComputeW2Scenario(decimal.Zero, domain.FilingHeadOfHousehold, 1)
	require.NoError(t, err)
	assert.True(t, result.TotalTax.IsZero())
	assert.True(t, result.EffectiveRate.IsZero(), "Zero income must not divide")
	assert.True(t, result.MarginalRate.IsZero())
}

func TestComputeSelfEmploymentScenario_Contributions(t *testing.T) {
	engine := NewCalculationEngine()

	in := referenceSelfEmploymentInput()
	in.RetirementContribution = dec("6000")
	in.InsuranceContribution = dec("2500")

	result, err := engine.ComputeSelfEmploymentScenario(in)
	require.NoError(t, err)

	assertDecimal(t, "agi", "61842.71", result.AGI)
	assertDecimal(t, "taxable", "32642.71", result.TaxableIncome)
	// 2320 + 9442.71 * 0.12 = 3453.1252, rounded up
	assertDecimal(t, "income tax", "3453.13", result.IncomeTax)
	// two dependents would be worth 4000 but the credit stops at the income tax
	assertDecimal(t, "credit", "3453.13", result.ChildTaxCredit)
	assertDecimal(t, "total", "10314.58", result.TotalTax)
	assertDecimal(t, "take home", "54185.42", result.TakeHomePay)
}

func TestComputeSelfEmploymentScenario_ExpensesCapped(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.ComputeSelfEmploymentScenario(domain.SelfEmploymentInput{
		GrossIncome:      dec("30000"),
		BusinessExpenses: dec("45000"),
		FilingStatus:     domain.FilingSingle,
	})
	require.NoError(t, err)

	assertDecimal(t, "expenses applied", "30000", result.BusinessExpenses)
	assert.True(t, result.NetIncome.IsZero())
	assert.True(t, result.SelfEmploymentTax.IsZero())
	assert.True(t, result.TotalTax.IsZero())
	assert.True(t, result.TakeHomePay.IsZero())
}

func TestScenarios_InvalidInput(t *testing.T) {
	engine := NewCalculationEngine()
	base := referenceSelfEmploymentInput()

	tests := []struct {
		name   string
		mutate func(in *domain.SelfEmploymentInput)
		field  string
	}{
		{"negative income", func(in *domain.SelfEmploymentInput) { in.GrossIncome = dec("-1") }, "gross_income"},
		{"negative expenses", func(in *domain.SelfEmploymentInput) { in.BusinessExpenses = dec("-1") }, "business_expenses"},
		{"negative retirement", func(in *domain.SelfEmploymentInput) { in.RetirementContribution = dec("-1") }, "retirement_contribution"},
		{"negative insurance", func(in *domain.SelfEmploymentInput) { in.InsuranceContribution = dec("-1") }, "insurance_contribution"},
		{"negative dependents", func(in *domain.SelfEmploymentInput) { in.Dependents = -2 }, "dependents"},
		{"unknown status", func(in *domain.SelfEmploymentInput) { in.FilingStatus = "qualifying_widow" }, "filing_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			result, err := engine.ComputeSelfEmploymentScenario(in)
			assert.Nil(t, result, "No partial results")
			var inputErr *domain.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}

	_, err := engine.ComputeW2Scenario(dec("-5"), domain.FilingSingle, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = engine.ComputeW2Scenario(dec("5"), domain.FilingSingle, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = engine.ComputeW2Scenario(dec("5"), "", 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSelfEmploymentNeverCheaperWithoutExpenses(t *testing.T) {
	engine := NewCalculationEngine()
	rng := rand.New(rand.NewSource(153))

	for i := 0; i < 300; i++ {
		gross := decimal.NewFromInt(rng.Int63n(2_000_000))
		status := domain.FilingStatuses[rng.Intn(len(domain.FilingStatuses))]
		dependents := rng.Intn(5)

		w2, err := engine.ComputeW2Scenario(gross, status, dependents)
		require.NoError(t, err)
		se, err := engine.ComputeSelfEmploymentScenario(domain.SelfEmploymentInput{
			GrossIncome:  gross,
			FilingStatus: status,
			Dependents:   dependents,
		})
		require.NoError(t, err)

		assert.True(t, se.TotalTax.GreaterThanOrEqual(w2.TotalTax), "%s %s dependents=%d: se %s < w2 %s",
			status, gross.String(), dependents, se.TotalTax.String(), w2.TotalTax.String())
	}
}
