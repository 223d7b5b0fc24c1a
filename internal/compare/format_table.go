package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison as a side-by-side console table
type TableFormatter struct{}

const (
	labelWidth = 28
	numWidth   = 16
	tableWidth = labelWidth + 2*numWidth + 2
)

// Format generates a table comparing the W-2 and self-employment scenarios
func (tf *TableFormatter) Format(result *domain.ComparisonResult) string {
	var sb strings.Builder
	w2, se := result.W2, result.SelfEmployment

	sb.WriteString("W-2 vs SELF-EMPLOYMENT TAX COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Tax Year: %d   Filing Status: %s   Dependents: %d\n\n",
		w2.TaxYear, w2.FilingStatus.Label(), w2.Dependents))

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", numWidth, "W-2", numWidth, "Self-Employed"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	tf.row(&sb, "Gross Income", w2.GrossIncome, se.GrossIncome)
	tf.row(&sb, "Business Expenses", decimal.Zero, se.BusinessExpenses)
	tf.row(&sb, "Standard Deduction", w2.StandardDeduction, se.StandardDeduction)
	tf.row(&sb, "Taxable Income", w2.TaxableIncome, se.TaxableIncome)
	tf.row(&sb, "Income Tax", w2.IncomeTax, se.IncomeTax)
	tf.row(&sb, "FICA / SE Tax", w2.FICA.Total, se.SelfEmploymentTax)
	tf.row(&sb, "Child Tax Credit", w2.ChildTaxCredit.Neg(), se.ChildTaxCredit.Neg())
	tf.row(&sb, "Total Tax", w2.TotalTax, se.TotalTax)
	tf.row(&sb, "Take-Home Pay", w2.TakeHomePay, se.TakeHomePay)
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "Effective Rate",
		numWidth, percent(w2.EffectiveRate), numWidth, percent(se.EffectiveRate)))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "Marginal Rate",
		numWidth, percent(w2.MarginalRate), numWidth, percent(se.MarginalRate)))
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	sb.WriteString("\nDIFFERENCE (self-employed minus W-2)\n")
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("  Tax:       %s%s (%s%%)\n",
		tf.deltaSymbol(result.TaxDifference),
		domain.FormatDollars(result.TaxDifference.Abs(), 2),
		result.TaxDifferencePercent.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("  Take-Home: %s%s\n",
		tf.deltaSymbol(result.TakeHomeDifference),
		domain.FormatDollars(result.TakeHomeDifference.Abs(), 2)))

	if plan := result.QuarterlySchedule; plan != nil && len(plan.Installments) > 0 {
		sb.WriteString("\nQUARTERLY ESTIMATED PAYMENTS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, inst := range plan.Installments {
			sb.WriteString(fmt.Sprintf("  %s  %-24s %*s\n", inst.Quarter, inst.DueDateLabel,
				numWidth, domain.FormatDollars(inst.AmountDue, 2)))
		}
		sb.WriteString(fmt.Sprintf("  Safe harbor: %s\n", domain.FormatDollars(plan.SafeHarborAmount, 2)))
	}

	if len(result.Learnings) > 0 {
		sb.WriteString("\nKEY LEARNINGS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, l := range result.Learnings {
			sb.WriteString(fmt.Sprintf("• %s\n", l))
		}
	}

	return sb.String()
}

// FormatCompact creates a single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(result *domain.ComparisonResult) string {
	return fmt.Sprintf("W-2 tax: %s | Self-employed tax: %s | Difference: %s%s",
		domain.FormatDollars(result.W2.TotalTax, 2),
		domain.FormatDollars(result.SelfEmployment.TotalTax, 2),
		tf.deltaSymbol(result.TaxDifference),
		domain.FormatDollars(result.TaxDifference.Abs(), 2))
}

func (tf *TableFormatter) row(sb *strings.Builder, label string, w2, se decimal.Decimal) {
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, label,
		numWidth, domain.FormatDollars(w2, 2), numWidth, domain.FormatDollars(se, 2)))
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

// percent renders a fraction as a percentage
func percent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(2) + "%"
}
