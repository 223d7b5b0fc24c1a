package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/domain"
)

func referenceInput() domain.ComparisonInput {
	return domain.ComparisonInput{
		GrossIncome:      decimal.NewFromInt(85000),
		BusinessExpenses: decimal.NewFromInt(12000),
		FilingStatus:     domain.FilingMarriedJointly,
		Dependents:       2,
	}
}

func seTotal(t *testing.T, engine *calculation.CalculationEngine, in domain.ComparisonInput) *domain.SelfEmploymentResult {
	t.Helper()
	se, err := engine.ComputeSelfEmploymentScenario(in.SelfEmployment())
	require.NoError(t, err)
	return se
}

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)

	assert.Same(t, engine, solver.CalcEngine)
	assert.Equal(t, 100, solver.Options.MaxIterations)
	assert.True(t, solver.Options.Tolerance.Equal(decimal.NewFromInt(1)))
}

func TestSolve_Expenses(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	result, err := NewDefaultSolver(engine).Solve(context.Background(), Request{
		Base:   referenceInput(),
		Target: TargetExpenses,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.Value.GreaterThan(decimal.NewFromInt(12000)))
	assert.True(t, result.Value.LessThan(decimal.NewFromInt(85000)))
	assert.True(t, result.ChangeFromBase.Equal(result.Value.Sub(decimal.NewFromInt(12000))))
	assert.Equal(t, "8734.5", result.W2.TotalTax.String())

	// At the solution the SE tax is at or below the W-2 tax, two dollars
	// less in expenses it is above
	assert.True(t, result.SelfEmployment.TotalTax.LessThanOrEqual(result.W2.TotalTax))
	in := referenceInput()
	in.BusinessExpenses = result.Value.Sub(decimal.NewFromInt(2))
	assert.True(t, seTotal(t, engine, in).TotalTax.GreaterThan(result.W2.TotalTax))
}

func TestSolve_ExpensesAlreadyBelow(t *testing.T) {
	in := referenceInput()
	in.BusinessExpenses = decimal.Zero
	in.GrossIncome = decimal.Zero

	result, err := NewDefaultSolver(calculation.NewCalculationEngine()).Solve(context.Background(), Request{
		Base:   in,
		Target: TargetExpenses,
	})
	require.NoError(t, err)
	assert.True(t, result.Value.IsZero())
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, "no business expenses needed", result.ConvergenceInfo)
}

func TestSolve_GrossIncome(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	result, err := NewDefaultSolver(engine).Solve(context.Background(), Request{
		Base:   referenceInput(),
		Target: TargetGrossIncome,
	})
	require.NoError(t, err)

	assert.True(t, result.Value.GreaterThan(decimal.NewFromInt(85000)))
	assert.True(t, result.SelfEmployment.TakeHomePay.GreaterThanOrEqual(result.W2.TakeHomePay))
	assert.True(t, result.SelfEmployment.BusinessExpenses.Equal(decimal.NewFromInt(12000)), "expenses stay as entered")

	in := referenceInput()
	in.GrossIncome = result.Value.Sub(decimal.NewFromInt(2))
	assert.True(t, seTotal(t, engine, in).TakeHomePay.LessThan(result.W2.TakeHomePay))
}

func TestSolve_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	_, err := solver.Solve(context.Background(), Request{Base: referenceInput(), Target: "retirement_date"})
	var beErr *BreakEvenError
	require.True(t, errors.As(err, &beErr))
	assert.Equal(t, "validate_request", beErr.Operation)

	bad := referenceInput()
	bad.FilingStatus = "widowed"
	_, err = solver.Solve(context.Background(), Request{Base: bad, Target: TargetExpenses})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = solver.Solve(context.Background(), Request{Base: referenceInput(), Target: TargetExpenses, MaxIterations: 3})
	require.True(t, errors.As(err, &beErr))
	assert.Contains(t, beErr.Message, "did not converge after 3 iterations")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = solver.Solve(ctx, Request{Base: referenceInput(), Target: TargetGrossIncome})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze(t *testing.T) {
	analysis, err := NewDefaultSolver(calculation.NewCalculationEngine()).Analyze(context.Background(), referenceInput())
	require.NoError(t, err)

	require.Len(t, analysis.Results, 2)
	require.NotNil(t, analysis.Result(TargetExpenses))
	require.NotNil(t, analysis.Result(TargetGrossIncome))
	assert.Nil(t, analysis.Result("other"))

	require.Len(t, analysis.Recommendations, 2)
	assert.Contains(t, analysis.Recommendations[0], "bring self-employment tax down to the W-2 level")
	assert.Contains(t, analysis.Recommendations[1], "to match W-2 take-home pay")

	text := (&TableFormatter{}).FormatAnalysis(analysis)
	assert.Contains(t, text, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, text, "Break-even business expenses: $")
	assert.Contains(t, text, "W-2 total tax: $8,734.50")
	assert.Contains(t, text, "converged")
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "solve", Message: "failed", Cause: cause}
	assert.Equal(t, "solve: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "solve: failed", (&BreakEvenError{Operation: "solve", Message: "failed"}).Error())
}
