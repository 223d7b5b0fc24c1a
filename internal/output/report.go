package output

import (
	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything one CLI or TUI invocation produced. Only the sections
// that were computed are set.
type Report struct {
	Title          string                            `json:"title"`
	TaxYear        int                               `json:"taxYear"`
	Marginal       *domain.TaxResult                 `json:"marginalTax,omitempty"`
	W2             *domain.W2ScenarioResult          `json:"w2Scenario,omitempty"`
	SelfEmployment *domain.SelfEmploymentResult      `json:"selfEmploymentScenario,omitempty"`
	Comparison     *domain.ComparisonResult          `json:"comparison,omitempty"`
	Quarterly      *domain.QuarterlyPlan             `json:"quarterlyPlan,omitempty"`
	Optimization   *domain.ExpenseOptimizationResult `json:"expenseOptimization,omitempty"`
	Recommendation *domain.ExpenseRecommendation     `json:"expenseRecommendation,omitempty"`
	BreakEven      *breakeven.Analysis               `json:"breakEven,omitempty"`
	Assumptions    []string                          `json:"assumptions,omitempty"`
}

// NewReport creates an empty report carrying the default assumptions
func NewReport(title string, taxYear int) *Report {
	return &Report{
		Title:       title,
		TaxYear:     taxYear,
		Assumptions: DefaultAssumptions,
	}
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatDollars(amount, 2)
}

// FormatPercentage formats a decimal that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fraction as a percentage
func FormatRate(fraction decimal.Decimal) string {
	return FormatPercentage(fraction.Mul(decimal.NewFromInt(100)))
}
