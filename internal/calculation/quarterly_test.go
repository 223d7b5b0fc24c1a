package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateQuarterlyPayments(t *testing.T) {
	engine := NewCalculationEngine()

	plan, err := engine.EstimateQuarterlyPayments(dec("10487.71"), decimal.Zero)
	require.NoError(t, err)

	require.Len(t, plan.Installments, 4)
	labels := []string{"April 15", "June 15", "September 15", "January 15 (next year)"}
	for i, inst := range plan.Installments {
		assertDecimal(t, inst.Quarter, "2621.9275", inst.AmountDue)
		assert.Equal(t, labels[i], inst.DueDateLabel)
	}
	assert.Equal(t, "Q1", plan.Installments[0].Quarter)
	assertDecimal(t, "safe harbor", "9438.939", plan.SafeHarborAmount)
	assertDecimal(t, "total", "10487.71", plan.Total())
	assert.Contains(t, plan.RecommendedActions[0], "$2,621.93")
}

func TestEstimateQuarterlyPayments_Withholding(t *testing.T) {
	engine := NewCalculationEngine()

	plan, err := engine.EstimateQuarterlyPayments(dec("10000"), dec("2000"))
	require.NoError(t, err)
	assertDecimal(t, "remaining", "8000", plan.RemainingTax)
	assertDecimal(t, "installment", "2000", plan.Installments[0].AmountDue)
	assertDecimal(t, "safe harbor uses annual tax", "9000", plan.SafeHarborAmount)

	plan, err = engine.EstimateQuarterlyPayments(dec("10000"), dec("12500"))
	require.NoError(t, err)
	assert.True(t, plan.RemainingTax.IsZero(), "Overpayment clamps to zero")
	for _, inst := range plan.Installments {
		assert.True(t, inst.AmountDue.IsZero())
	}
	assert.Contains(t, plan.RecommendedActions[0], "no installments are due")
}

func TestEstimateQuarterlyPayments_InvalidInput(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.EstimateQuarterlyPayments(dec("-1"), decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = engine.EstimateQuarterlyPayments(dec("100"), dec("-1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEstimateQuarterlyFromIncome(t *testing.T) {
	engine := NewCalculationEngine()

	plan, err := engine.EstimateQuarterlyFromIncome(dec("50000"), domain.FilingSingle, decimal.Zero)
	require.NoError(t, err)
	assertDecimal(t, "annual", "4016", plan.AnnualTax)
	assertDecimal(t, "installment", "1004", plan.Installments[3].AmountDue)

	_, err = engine.EstimateQuarterlyFromIncome(dec("50000"), "joint", decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
