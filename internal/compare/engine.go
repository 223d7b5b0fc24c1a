package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine runs the W-2 and self-employment scenarios side by side
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare computes both scenarios for the same gross income, the deltas
// between them, the learnings and the self-employed quarterly schedule.
// Any invalid input fails the whole comparison.
func (ce *CompareEngine) Compare(in domain.ComparisonInput) (*domain.ComparisonResult, error) {
	w2, err := ce.CalcEngine.ComputeW2Scenario(in.GrossIncome, in.FilingStatus, in.Dependents)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate W-2 scenario: %w", err)
	}

	se, err := ce.CalcEngine.ComputeSelfEmploymentScenario(in.SelfEmployment())
	if err != nil {
		return nil, fmt.Errorf("failed to calculate self-employment scenario: %w", err)
	}

	schedule, err := ce.CalcEngine.EstimateQuarterlyPayments(se.TotalTax, decimal.Zero)
	if err != nil {
		return nil, fmt.Errorf("failed to build quarterly schedule: %w", err)
	}

	result := ce.MetricsCalculator.CalculateComparison(w2, se)
	result.QuarterlySchedule = schedule
	result.Learnings = GenerateLearnings(result, ce.CalcEngine.Rules.SelfEmployment.TaxRate)

	ce.CalcEngine.Logger.Debugf("comparison: tax difference %s, take-home difference %s",
		result.TaxDifference.String(), result.TakeHomeDifference.String())
	return result, nil
}
