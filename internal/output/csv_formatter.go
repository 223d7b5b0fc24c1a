package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter flattens the report into section,item,value rows
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

type csvRows struct {
	rows [][]string
}

func (r *csvRows) add(section, item string, value decimal.Decimal) {
	r.rows = append(r.rows, []string{section, item, value.StringFixed(2)})
}

func (r *csvRows) text(section, item, value string) {
	r.rows = append(r.rows, []string{section, item, value})
}

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	rows := &csvRows{}

	if m := report.Marginal; m != nil {
		rows.add("marginal", "gross_income", m.GrossIncome)
		rows.add("marginal", "taxable_income", m.TaxableIncome)
		for _, b := range m.BracketContributions {
			rows.add("marginal", "bracket "+b.RangeLabel(), b.TaxFromBracket)
		}
		rows.add("marginal", "total_tax", m.TotalTax)
		rows.text("marginal", "effective_rate", m.EffectiveRate.StringFixed(6))
		rows.text("marginal", "marginal_rate", m.MarginalRate.String())
		rows.add("marginal", "net_income", m.NetIncome)
	}
	if w := report.W2; w != nil {
		c.w2Rows(rows, "w2", w)
	}
	if s := report.SelfEmployment; s != nil {
		c.seRows(rows, "self_employment", s)
	}
	if cmp := report.Comparison; cmp != nil {
		c.w2Rows(rows, "comparison_w2", cmp.W2)
		c.seRows(rows, "comparison_self_employment", cmp.SelfEmployment)
		rows.add("comparison", "tax_difference", cmp.TaxDifference)
		rows.add("comparison", "take_home_difference", cmp.TakeHomeDifference)
		rows.add("comparison", "tax_difference_percent", cmp.TaxDifferencePercent)
	}
	if q := report.Quarterly; q != nil {
		rows.add("quarterly", "annual_tax", q.AnnualTax)
		rows.add("quarterly", "remaining_tax", q.RemainingTax)
		for _, inst := range q.Installments {
			rows.text("quarterly", inst.Quarter+" "+inst.DueDateLabel, inst.AmountDue.StringFixed(4))
		}
		rows.add("quarterly", "safe_harbor", q.SafeHarborAmount)
	}
	if o := report.Optimization; o != nil {
		rows.add("expenses", "revenue", o.Revenue)
		rows.add("expenses", "total_expenses", o.TotalExpenses)
		rows.add("expenses", "net_income", o.NetIncome)
		rows.add("expenses", "profit_margin_percent", o.ProfitMargin)
		for _, a := range o.Categories {
			rows.text("expenses", string(a.Category)+" "+a.Status, a.Amount.StringFixed(2))
		}
		for _, rec := range o.Recommendations {
			rows.add("expenses", "reduce "+string(rec.Category), rec.RecommendedReduction)
		}
		rows.add("expenses", "max_recommended_deductions", o.MaxRecommendedDeductions)
		scaled := make([]string, 0, len(o.ScaledExpenses))
		for cat := range o.ScaledExpenses {
			scaled = append(scaled, string(cat))
		}
		sort.Strings(scaled)
		for _, cat := range scaled {
			rows.add("expenses", "scaled "+cat, o.ScaledExpenses[domain.ExpenseCategory(cat)])
		}
	}
	if r := report.Recommendation; r != nil {
		for _, s := range r.Suggested {
			rows.add("recommended", s.Category, s.Amount)
		}
		rows.add("recommended", "total", r.TotalRecommended)
		rows.add("recommended", "potential_tax_savings", r.PotentialTaxSavings)
	}
	if be := report.BreakEven; be != nil {
		for _, r := range be.Results {
			rows.add("break_even", string(r.Request.Target), r.Value)
			rows.add("break_even", string(r.Request.Target)+"_change", r.ChangeFromBase)
		}
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Item", "Value"}); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows.rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (c CSVFormatter) w2Rows(rows *csvRows, section string, w *domain.W2ScenarioResult) {
	rows.add(section, "gross_income", w.GrossIncome)
	rows.add(section, "taxable_income", w.TaxableIncome)
	rows.add(section, "income_tax", w.IncomeTax)
	rows.add(section, "social_security", w.FICA.SocialSecurity)
	rows.add(section, "medicare", w.FICA.Medicare)
	rows.add(section, "additional_medicare", w.FICA.AdditionalMedicare)
	rows.add(section, "child_tax_credit", w.ChildTaxCredit)
	rows.add(section, "total_tax", w.TotalTax)
	rows.add(section, "take_home_pay", w.TakeHomePay)
}

func (c CSVFormatter) seRows(rows *csvRows, section string, s *domain.SelfEmploymentResult) {
	rows.add(section, "gross_income", s.GrossIncome)
	rows.add(section, "business_expenses", s.BusinessExpenses)
	rows.add(section, "net_income", s.NetIncome)
	rows.add(section, "self_employment_tax", s.SelfEmploymentTax)
	rows.add(section, "se_tax_deduction", s.SETaxDeduction)
	rows.add(section, "agi", s.AGI)
	rows.add(section, "taxable_income", s.TaxableIncome)
	rows.add(section, "income_tax", s.IncomeTax)
	rows.add(section, "child_tax_credit", s.ChildTaxCredit)
	rows.add(section, "total_tax", s.TotalTax)
	rows.add(section, "take_home_pay", s.TakeHomePay)
	rows.text(section, "quarterly_payment", s.QuarterlyPayment.StringFixed(4))
}
