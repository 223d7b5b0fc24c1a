package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateLearnings produces the ordered learnings for a comparison. The
// first four are always present; contribution notes appear only for
// contributions above zero; the last line depends on the sign of the tax
// difference.
func GenerateLearnings(result *domain.ComparisonResult, seTaxRate decimal.Decimal) []string {
	se := result.SelfEmployment

	learnings := []string{
		fmt.Sprintf("Self-employment tax is %s%% on top of income tax (you pay both halves of FICA)",
			seTaxRate.Mul(hundred).String()),
		fmt.Sprintf("Business expenses of %s reduce your taxable income",
			domain.FormatDollars(se.BusinessExpenses, 2)),
		fmt.Sprintf("You must make quarterly estimated payments of %s",
			domain.FormatDollars(se.QuarterlyPayment, 2)),
		"Keep detailed records of ALL business expenses (mileage, supplies, home office, etc.)",
	}

	if se.InsuranceContribution.IsPositive() {
		learnings = append(learnings, fmt.Sprintf("Insurance policy contribution of %s builds tax-advantaged wealth",
			domain.FormatDollars(se.InsuranceContribution, 2)))
	}

	if se.RetirementContribution.IsPositive() {
		learnings = append(learnings, fmt.Sprintf("SEP IRA contribution of %s reduces taxable income",
			domain.FormatDollars(se.RetirementContribution, 2)))
	}

	if result.TaxDifference.IsPositive() {
		learnings = append(learnings, fmt.Sprintf("You'll pay %s MORE in taxes as self-employed (before optimizations)",
			domain.FormatDollars(result.TaxDifference, 2)))
	} else {
		learnings = append(learnings, fmt.Sprintf("You'll pay %s LESS in taxes as self-employed (with optimizations)",
			domain.FormatDollars(result.TaxDifference.Abs(), 2)))
	}

	return learnings
}
