package domain

import "github.com/shopspring/decimal"

// QuarterlyInstallment is one estimated payment
type QuarterlyInstallment struct {
	Quarter      string          `json:"quarter"`
	DueDateLabel string          `json:"dueDate"`
	AmountDue    decimal.Decimal `json:"amountDue"`
}

// QuarterlyPlan splits the remaining annual liability into four installments
type QuarterlyPlan struct {
	AnnualTax          decimal.Decimal        `json:"annualTax"`
	YTDWithheld        decimal.Decimal        `json:"ytdWithheld"`
	RemainingTax       decimal.Decimal        `json:"remainingTax"`
	Installments       []QuarterlyInstallment `json:"installments"`
	SafeHarborAmount   decimal.Decimal        `json:"safeHarborAmount"`
	RecommendedActions []string               `json:"recommendedActions"`
}

// Total returns the sum of all installments
func (qp *QuarterlyPlan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range qp.Installments {
		total = total.Add(inst.AmountDue)
	}
	return total
}
