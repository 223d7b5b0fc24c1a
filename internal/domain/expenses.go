package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the closed set of benchmarked business expense categories
type ExpenseCategory string

const (
	ExpenseCOGS      ExpenseCategory = "cogs"
	ExpenseMarketing ExpenseCategory = "marketing"
	ExpenseSalaries  ExpenseCategory = "salaries"
	ExpenseOffice    ExpenseCategory = "office"
	ExpenseTravel    ExpenseCategory = "travel"
	ExpenseOther     ExpenseCategory = "other"
)

// ExpenseCategories lists every accepted category
var ExpenseCategories = []ExpenseCategory{
	ExpenseCOGS, ExpenseMarketing, ExpenseSalaries, ExpenseOffice, ExpenseTravel, ExpenseOther,
}

// IsValid reports whether c belongs to the closed category set
func (c ExpenseCategory) IsValid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseExpenseCategory rejects anything outside the closed set
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", NewInputError("expenses", fmt.Sprintf("unknown expense category %q", s))
	}
	return c, nil
}

// Spending status of a category relative to its benchmark band
const (
	SpendingOver   = "over"
	SpendingWithin = "within"
	SpendingUnder  = "under"
)

// ExpenseAnalysis compares one category against its benchmark
type ExpenseAnalysis struct {
	Category       ExpenseCategory `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	CurrentRatio   decimal.Decimal `json:"currentRatio"`   // fraction of revenue
	BenchmarkRatio decimal.Decimal `json:"benchmarkRatio"` // fraction of revenue
	Status         string          `json:"status"`
}

// ExpenseAdjustment is a flagged over-benchmark category
type ExpenseAdjustment struct {
	Category             ExpenseCategory `json:"category"`
	CurrentRatio         decimal.Decimal `json:"currentRatio"`
	RecommendedRatio     decimal.Decimal `json:"recommendedRatio"`
	RecommendedReduction decimal.Decimal `json:"recommendedReduction"`
	Action               string          `json:"action"`
}

// ExpenseOptimizationResult is the benchmark comparison for a set of expenses
type ExpenseOptimizationResult struct {
	Revenue                  decimal.Decimal                     `json:"revenue"`
	TotalExpenses            decimal.Decimal                     `json:"totalExpenses"`
	NetIncome                decimal.Decimal                     `json:"netIncome"`
	ProfitMargin             decimal.Decimal                     `json:"profitMargin"` // percent
	Categories               []ExpenseAnalysis                   `json:"categories"`
	Recommendations          []ExpenseAdjustment                 `json:"recommendations"`
	MaxRecommendedDeductions decimal.Decimal                     `json:"maxRecommendedDeductions"`
	ScaledExpenses           map[ExpenseCategory]decimal.Decimal `json:"scaledExpenses,omitempty"`
}

// SuggestedExpense is one line of a revenue-based expense plan
type SuggestedExpense struct {
	Category    string          `json:"category"`
	Percentage  decimal.Decimal `json:"percentage"` // fraction of revenue
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseRecommendation is a heuristic planning aid derived from revenue alone.
// Its savings figure uses a flat assumed marginal rate, not a tax-law computation.
type ExpenseRecommendation struct {
	Revenue             decimal.Decimal    `json:"revenue"`
	CurrentExpenses     decimal.Decimal    `json:"currentExpenses"`
	Suggested           []SuggestedExpense `json:"recommendedExpenses"`
	TotalRecommended    decimal.Decimal    `json:"totalRecommended"`
	AssumedMarginalRate decimal.Decimal    `json:"assumedMarginalRate"`
	PotentialTaxSavings decimal.Decimal    `json:"potentialTaxSavings"`
	Tips                []string           `json:"tips"`
	Suggestions         []string           `json:"suggestions"`
	Disclaimer          string             `json:"disclaimer"`
}
