package compare

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceInput() domain.ComparisonInput {
	return domain.ComparisonInput{
		GrossIncome:      decimal.NewFromInt(85000),
		BusinessExpenses: decimal.NewFromInt(12000),
		FilingStatus:     domain.FilingMarriedJointly,
		Dependents:       2,
	}
}

func TestNewCompareEngine(t *testing.T) {
	calc := calculation.NewCalculationEngine()
	engine := NewCompareEngine(calc)

	assert.Same(t, calc, engine.CalcEngine)
	assert.NotNil(t, engine.MetricsCalculator)
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	result, err := engine.Compare(referenceInput())
	require.NoError(t, err)

	assert.Equal(t, "10487.71", result.SelfEmployment.TotalTax.String())
	assert.Equal(t, "8734.5", result.W2.TotalTax.String())
	assert.Equal(t, "1753.21", result.TaxDifference.String())
	assert.Equal(t, "-13753.21", result.TakeHomeDifference.String())
	assert.Equal(t, "20.07", result.TaxDifferencePercent.String())

	require.NotNil(t, result.QuarterlySchedule)
	assert.Len(t, result.QuarterlySchedule.Installments, 4)
	assert.Equal(t, "2621.9275", result.QuarterlySchedule.Installments[0].AmountDue.String())

	expected := []string{
		"Self-employment tax is 15.3% on top of income tax (you pay both halves of FICA)",
		"Business expenses of $12,000.00 reduce your taxable income",
		"You must make quarterly estimated payments of $2,621.93",
		"Keep detailed records of ALL business expenses (mileage, supplies, home office, etc.)",
		"You'll pay $1,753.21 MORE in taxes as self-employed (before optimizations)",
	}
	assert.Equal(t, expected, result.Learnings)
}

func TestCompareEngine_ContributionLearnings(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	in := referenceInput()
	in.RetirementContribution = decimal.NewFromInt(6000)
	in.InsuranceContribution = decimal.NewFromInt(2500)

	result, err := engine.Compare(in)
	require.NoError(t, err)

	require.Len(t, result.Learnings, 7)
	assert.Contains(t, result.Learnings[4], "Insurance policy contribution of $2,500.00")
	assert.Contains(t, result.Learnings[5], "SEP IRA contribution of $6,000.00")
	assert.Contains(t, result.Learnings[6], "MORE")
}

func TestCompareEngine_SelfEmploymentCheaper(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	in := referenceInput()
	in.BusinessExpenses = decimal.NewFromInt(60000)

	result, err := engine.Compare(in)
	require.NoError(t, err)

	assert.True(t, result.TaxDifference.LessThanOrEqual(decimal.Zero))
	last := result.Learnings[len(result.Learnings)-1]
	assert.Contains(t, last, "LESS")
}

func TestCompareEngine_ZeroIncome(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	result, err := engine.Compare(domain.ComparisonInput{FilingStatus: domain.FilingSingle})
	require.NoError(t, err)

	assert.True(t, result.TaxDifferencePercent.IsZero(), "Zero W-2 tax must not divide")
	assert.Contains(t, result.Learnings[len(result.Learnings)-1], "$0.00 LESS")
}

func TestCompareEngine_InvalidInput(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	in := referenceInput()
	in.FilingStatus = "single_parent"

	result, err := engine.Compare(in)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "W-2 scenario")

	in = referenceInput()
	in.InsuranceContribution = decimal.NewFromInt(-1)
	_, err = engine.Compare(in)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "self-employment scenario")
}
