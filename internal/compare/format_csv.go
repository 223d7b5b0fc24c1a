package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter formats a comparison as CSV, one row per line item
type CSVFormatter struct{}

// Format generates CSV output for a comparison
func (cf *CSVFormatter) Format(result *domain.ComparisonResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write([]string{"Item", "W-2", "Self-Employed", "Difference"}); err != nil {
		return "", err
	}

	w2, se := result.W2, result.SelfEmployment
	rows := []struct {
		item   string
		w2, se decimal.Decimal
	}{
		{"Gross Income", w2.GrossIncome, se.GrossIncome},
		{"Business Expenses", decimal.Zero, se.BusinessExpenses},
		{"Taxable Income", w2.TaxableIncome, se.TaxableIncome},
		{"Income Tax", w2.IncomeTax, se.IncomeTax},
		{"FICA / SE Tax", w2.FICA.Total, se.SelfEmploymentTax},
		{"Child Tax Credit", w2.ChildTaxCredit, se.ChildTaxCredit},
		{"Total Tax", w2.TotalTax, se.TotalTax},
		{"Take-Home Pay", w2.TakeHomePay, se.TakeHomePay},
	}
	for _, r := range rows {
		if err := writer.Write(cf.formatRow(r.item, r.w2, r.se)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a line item as a CSV row
func (cf *CSVFormatter) formatRow(item string, w2, se decimal.Decimal) []string {
	return []string{
		item,
		w2.StringFixed(2),
		se.StringFixed(2),
		se.Sub(w2).StringFixed(2),
	}
}
