package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results for the console
type TableFormatter struct{}

var targetLabels = map[Target]string{
	TargetExpenses:    "Break-even business expenses",
	TargetGrossIncome: "Self-employed gross for equal take-home",
}

// Format renders one solver result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s", targetLabels[result.Request.Target], domain.FormatDollars(result.Value, 2)))
	if !result.ChangeFromBase.IsZero() {
		sb.WriteString(fmt.Sprintf(" (%s%s vs entered)", tf.deltaSymbol(result.ChangeFromBase),
			domain.FormatDollars(result.ChangeFromBase.Abs(), 2)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Status:        %s, %d iterations (%s)\n", tf.formatStatus(result.Success), result.Iterations, result.ConvergenceInfo))
	sb.WriteString(fmt.Sprintf("  W-2 total tax: %s   take-home: %s\n",
		domain.FormatDollars(result.W2.TotalTax, 2), domain.FormatDollars(result.W2.TakeHomePay, 2)))
	sb.WriteString(fmt.Sprintf("  SE total tax:  %s   take-home: %s\n",
		domain.FormatDollars(result.SelfEmployment.TotalTax, 2), domain.FormatDollars(result.SelfEmployment.TakeHomePay, 2)))
	return sb.String()
}

// FormatAnalysis renders every result and the recommendations
func (tf *TableFormatter) FormatAnalysis(a *Analysis) string {
	var sb strings.Builder
	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, r := range a.Results {
		sb.WriteString(tf.Format(r))
		sb.WriteString("\n")
	}
	for _, rec := range a.Recommendations {
		sb.WriteString(fmt.Sprintf("  → %s\n", rec))
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "converged"
	}
	return "not converged"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}
