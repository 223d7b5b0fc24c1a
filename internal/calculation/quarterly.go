package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// EstimateQuarterlyPayments splits the tax not yet withheld into four equal
// installments. Withholding above the annual tax leaves nothing due; the
// installments never go negative. Due dates are fixed labels from the rules.
func (ce *CalculationEngine) EstimateQuarterlyPayments(annualTax, ytdWithheld decimal.Decimal) (*domain.QuarterlyPlan, error) {
	if err := requireNonNegative("annual_tax", annualTax); err != nil {
		return nil, ce.reject(err)
	}
	if err := requireNonNegative("ytd_withheld", ytdWithheld); err != nil {
		return nil, ce.reject(err)
	}

	q := ce.Rules.Quarterly
	remaining := decimal.Max(decimal.Zero, annualTax.Sub(ytdWithheld))
	installment := remaining.Div(decimal.NewFromInt(int64(len(q.DueDates))))

	plan := &domain.QuarterlyPlan{
		AnnualTax:        annualTax,
		YTDWithheld:      ytdWithheld,
		RemainingTax:     remaining,
		SafeHarborAmount: annualTax.Mul(q.SafeHarborRatio),
	}
	for i, due := range q.DueDates {
		plan.Installments = append(plan.Installments, domain.QuarterlyInstallment{
			Quarter:      fmt.Sprintf("Q%d", i+1),
			DueDateLabel: due,
			AmountDue:    installment,
		})
	}
	plan.RecommendedActions = quarterlyActions(installment, plan.SafeHarborAmount)

	ce.debugf("quarterly: annual=%s withheld=%s remaining=%s installment=%s",
		annualTax.String(), ytdWithheld.String(), remaining.String(), installment.String())
	return plan, nil
}

// EstimateQuarterlyFromIncome projects the annual tax from an expected
// income with ComputeMarginalTax and plans the installments for it
func (ce *CalculationEngine) EstimateQuarterlyFromIncome(projectedIncome decimal.Decimal, status domain.FilingStatus, ytdWithheld decimal.Decimal) (*domain.QuarterlyPlan, error) {
	result, err := ce.ComputeMarginalTax(projectedIncome, status)
	if err != nil {
		return nil, err
	}
	return ce.EstimateQuarterlyPayments(result.TotalTax, ytdWithheld)
}

func quarterlyActions(installment, safeHarbor decimal.Decimal) []string {
	if installment.IsZero() {
		return []string{
			"Payments to date cover the estimated annual tax; no installments are due",
			"Re-estimate if your income changes during the year",
		}
	}
	return []string{
		fmt.Sprintf("Pay %s by each quarterly due date", domain.FormatDollars(installment, 2)),
		fmt.Sprintf("Paying at least %s in total this year meets the safe harbor", domain.FormatDollars(safeHarbor, 2)),
		"Consider increasing withholding if employed",
		"Track business expenses for deductions",
	}
}
