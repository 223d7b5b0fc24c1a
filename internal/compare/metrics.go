package compare

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MetricsCalculator derives the deltas between two scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateComparison pairs the scenarios and computes self-employment minus
// W-2 deltas. The percent is relative to the W-2 total tax and is zero when
// that total is zero.
func (mc *MetricsCalculator) CalculateComparison(w2 *domain.W2ScenarioResult, se *domain.SelfEmploymentResult) *domain.ComparisonResult {
	result := &domain.ComparisonResult{
		W2:                 w2,
		SelfEmployment:     se,
		TaxDifference:      se.TotalTax.Sub(w2.TotalTax),
		TakeHomeDifference: se.TakeHomePay.Sub(w2.TakeHomePay),
	}

	if w2.TotalTax.IsPositive() {
		result.TaxDifferencePercent = result.TaxDifference.
			Div(w2.TotalTax).
			Mul(hundred).
			Round(2)
	}

	return result
}
