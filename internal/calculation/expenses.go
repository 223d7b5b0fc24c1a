package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

const expenseDisclaimer = "Heuristic planning aid: suggested allocations are fixed shares of revenue and " +
	"savings use a flat assumed marginal rate. This is not a tax-law computation; " +
	"consult a qualified tax professional."

var hundred = decimal.NewFromInt(100)

func validateExpenses(expenses map[domain.ExpenseCategory]decimal.Decimal) error {
	for category, amount := range expenses {
		if !category.IsValid() {
			return domain.NewInputError("expenses", fmt.Sprintf("unknown expense category %q", category))
		}
		if err := requireNonNegative("expenses."+string(category), amount); err != nil {
			return err
		}
	}
	return nil
}

// OptimizeExpenses compares each category's share of revenue with its
// benchmark. A category is flagged only when its share is strictly above
// benchmark * tolerance; the symmetric band below the benchmark marks it as
// under-spent. With zero revenue every ratio is zero and nothing is flagged.
func (ce *CalculationEngine) OptimizeExpenses(revenue decimal.Decimal, expenses map[domain.ExpenseCategory]decimal.Decimal) (*domain.ExpenseOptimizationResult, error) {
	if err := requireNonNegative("revenue", revenue); err != nil {
		return nil, ce.reject(err)
	}
	if err := validateExpenses(expenses); err != nil {
		return nil, ce.reject(err)
	}

	rules := ce.Rules.Expenses
	total := decimal.Zero
	for _, amount := range expenses {
		total = total.Add(amount)
	}
	net := revenue.Sub(total)

	result := &domain.ExpenseOptimizationResult{
		Revenue:                  revenue,
		TotalExpenses:            total,
		NetIncome:                net,
		ProfitMargin:             ratio(net, revenue).Mul(hundred),
		MaxRecommendedDeductions: revenue.Mul(rules.MaxDeductibleShare),
	}

	lowerFactor := decimal.Max(decimal.Zero, decimal.NewFromInt(2).Sub(rules.ToleranceFactor))
	for _, category := range domain.ExpenseCategories {
		benchmark, ok := rules.Benchmark(category)
		if !ok {
			return nil, fmt.Errorf("no %d expense benchmark for %s", ce.Rules.TaxYear, category)
		}
		amount := expenses[category]
		current := ratio(amount, revenue)
		upper := revenue.Mul(benchmark).Mul(rules.ToleranceFactor)
		lower := revenue.Mul(benchmark).Mul(lowerFactor)

		status := domain.SpendingWithin
		switch {
		case !revenue.IsPositive():
			status = domain.SpendingUnder
		case amount.GreaterThan(upper):
			status = domain.SpendingOver
		case amount.LessThan(lower):
			status = domain.SpendingUnder
		}

		result.Categories = append(result.Categories, domain.ExpenseAnalysis{
			Category:       category,
			Amount:         amount,
			CurrentRatio:   current,
			BenchmarkRatio: benchmark,
			Status:         status,
		})

		if status != domain.SpendingOver {
			continue
		}
		reduction := amount.Sub(revenue.Mul(benchmark))
		result.Recommendations = append(result.Recommendations, domain.ExpenseAdjustment{
			Category:             category,
			CurrentRatio:         current,
			RecommendedRatio:     benchmark,
			RecommendedReduction: reduction,
			Action:               fmt.Sprintf("Reduce %s spending by %s", category, domain.FormatDollars(reduction, 0)),
		})
	}

	if total.GreaterThan(result.MaxRecommendedDeductions) && total.IsPositive() {
		scale := result.MaxRecommendedDeductions.Div(total)
		result.ScaledExpenses = make(map[domain.ExpenseCategory]decimal.Decimal, len(expenses))
		for category, amount := range expenses {
			result.ScaledExpenses[category] = amount.Mul(scale).Round(2)
		}
		ce.Logger.Infof("expenses %s exceed the reasonable maximum %s; scaled by %s",
			total.String(), result.MaxRecommendedDeductions.String(), scale.StringFixed(4))
	}

	ce.debugf("optimize: revenue=%s total=%s flagged=%d", revenue.String(), total.String(), len(result.Recommendations))
	return result, nil
}

// RecommendExpenses suggests deductible expense allocations as fixed shares of
// revenue, with savings estimated at a flat assumed marginal rate. It does not
// look at actual spend beyond the planning suggestions.
func (ce *CalculationEngine) RecommendExpenses(revenue, currentExpenses decimal.Decimal) (*domain.ExpenseRecommendation, error) {
	if err := requireNonNegative("revenue", revenue); err != nil {
		return nil, ce.reject(err)
	}
	if err := requireNonNegative("current_expenses", currentExpenses); err != nil {
		return nil, ce.reject(err)
	}

	rules := ce.Rules.Expenses
	rec := &domain.ExpenseRecommendation{
		Revenue:             revenue,
		CurrentExpenses:     currentExpenses,
		TotalRecommended:    decimal.Zero,
		AssumedMarginalRate: rules.AssumedMarginalRate,
		Tips:                append([]string(nil), rules.Tips...),
		Disclaimer:          expenseDisclaimer,
	}
	for _, allowance := range rules.Recommendations {
		amount := revenue.Mul(allowance.Percentage)
		rec.Suggested = append(rec.Suggested, domain.SuggestedExpense{
			Category:    allowance.Category,
			Percentage:  allowance.Percentage,
			Description: allowance.Description,
			Amount:      amount,
		})
		rec.TotalRecommended = rec.TotalRecommended.Add(amount)
	}
	rec.PotentialTaxSavings = rec.TotalRecommended.Mul(rules.AssumedMarginalRate)
	rec.Suggestions = planningSuggestions(revenue, currentExpenses)
	return rec, nil
}

var (
	trackExpensesShare   = decimal.NewFromFloat(0.3)
	sCorpNetIncomeFloor  = decimal.NewFromInt(50000)
	retirementPlanIncome = decimal.NewFromInt(100000)
)

func planningSuggestions(revenue, expenses decimal.Decimal) []string {
	var out []string
	if expenses.LessThan(revenue.Mul(trackExpensesShare)) {
		out = append(out, "Consider tracking more business expenses - many self-employed miss 30-40% of deductible expenses")
	}
	if revenue.Sub(expenses).GreaterThan(sCorpNetIncomeFloor) {
		out = append(out, "You may benefit from S-Corp election to reduce self-employment tax")
	}
	if revenue.GreaterThan(retirementPlanIncome) {
		out = append(out, "Consider setting up a SEP-IRA or Solo 401(k) for additional tax savings")
	}
	return out
}
