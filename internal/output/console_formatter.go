package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a report as plain text for the terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

const rule = "================================================================================="

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "%s (tax year %d)\n", strings.ToUpper(report.Title), report.TaxYear)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)

	if report.Marginal != nil {
		writeMarginal(&buf, report.Marginal)
	}
	if report.W2 != nil {
		writeW2(&buf, report.W2)
	}
	if report.SelfEmployment != nil {
		writeSelfEmployment(&buf, report.SelfEmployment)
	}
	if report.Comparison != nil {
		tf := &compare.TableFormatter{}
		buf.WriteString(tf.Format(report.Comparison))
		fmt.Fprintln(&buf)
	}
	if report.Quarterly != nil {
		writeQuarterly(&buf, report.Quarterly)
	}
	if report.Optimization != nil {
		writeOptimization(&buf, report.Optimization)
	}
	if report.Recommendation != nil {
		writeRecommendation(&buf, report.Recommendation)
	}
	if report.BreakEven != nil {
		bf := &breakeven.TableFormatter{}
		buf.WriteString(bf.FormatAnalysis(report.BreakEven))
		fmt.Fprintln(&buf)
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-28s %16s\n", label+":", FormatCurrency(amount))
}

func rateLine(buf *bytes.Buffer, label string, fraction decimal.Decimal) {
	fmt.Fprintf(buf, "  %-28s %16s\n", label+":", FormatRate(fraction))
}

func writeBrackets(buf *bytes.Buffer, contributions []domain.BracketContribution) {
	if len(contributions) == 0 {
		fmt.Fprintln(buf, "  (no income reaches a tax bracket)")
		return
	}
	fmt.Fprintf(buf, "  %-24s %7s %16s %14s\n", "Bracket", "Rate", "Taxable", "Tax")
	for _, c := range contributions {
		fmt.Fprintf(buf, "  %-24s %7s %16s %14s\n",
			c.RangeLabel(), FormatRate(c.Rate), FormatCurrency(c.TaxableInBracket), FormatCurrency(c.TaxFromBracket))
	}
}

func writeMarginal(buf *bytes.Buffer, r *domain.TaxResult) {
	fmt.Fprintf(buf, "MARGINAL TAX (%s)\n", r.FilingStatus.Label())
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	line(buf, "Gross Income", r.GrossIncome)
	line(buf, "Standard Deduction", r.StandardDeduction)
	line(buf, "Taxable Income", r.TaxableIncome)
	writeBrackets(buf, r.BracketContributions)
	line(buf, "Total Tax", r.TotalTax)
	rateLine(buf, "Effective Rate", r.EffectiveRate)
	rateLine(buf, "Marginal Rate", r.MarginalRate)
	line(buf, "Net Income", r.NetIncome)
	fmt.Fprintln(buf)
}

func writeW2(buf *bytes.Buffer, r *domain.W2ScenarioResult) {
	fmt.Fprintf(buf, "W-2 EMPLOYMENT (%s, %d dependents)\n", r.FilingStatus.Label(), r.Dependents)
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	line(buf, "Gross Income", r.GrossIncome)
	line(buf, "Standard Deduction", r.StandardDeduction)
	line(buf, "Taxable Income", r.TaxableIncome)
	line(buf, "Income Tax", r.IncomeTax)
	line(buf, "Social Security", r.FICA.SocialSecurity)
	line(buf, "Medicare", r.FICA.Medicare)
	line(buf, "Additional Medicare", r.FICA.AdditionalMedicare)
	line(buf, "Child Tax Credit", r.ChildTaxCredit.Neg())
	line(buf, "Total Tax", r.TotalTax)
	rateLine(buf, "Effective Rate", r.EffectiveRate)
	rateLine(buf, "Marginal Rate", r.MarginalRate)
	line(buf, "Take-Home Pay", r.TakeHomePay)
	fmt.Fprintln(buf)
}

func writeSelfEmployment(buf *bytes.Buffer, r *domain.SelfEmploymentResult) {
	fmt.Fprintf(buf, "SELF-EMPLOYMENT (%s, %d dependents)\n", r.FilingStatus.Label(), r.Dependents)
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	line(buf, "Gross Income", r.GrossIncome)
	line(buf, "Business Expenses", r.BusinessExpenses)
	line(buf, "Net Income", r.NetIncome)
	line(buf, "SE Taxable Base", r.SETaxableBase)
	line(buf, "Self-Employment Tax", r.SelfEmploymentTax)
	line(buf, "SE Tax Deduction", r.SETaxDeduction)
	if r.RetirementContribution.IsPositive() {
		line(buf, "Retirement Contribution", r.RetirementContribution)
	}
	line(buf, "AGI", r.AGI)
	line(buf, "Standard Deduction", r.StandardDeduction)
	line(buf, "Taxable Income", r.TaxableIncome)
	writeBrackets(buf, r.BracketDetails)
	line(buf, "Income Tax", r.IncomeTax)
	line(buf, "Child Tax Credit", r.ChildTaxCredit.Neg())
	line(buf, "Total Tax", r.TotalTax)
	if r.InsuranceContribution.IsPositive() {
		line(buf, "Insurance Contribution", r.InsuranceContribution)
	}
	rateLine(buf, "Effective Rate", r.EffectiveRate)
	rateLine(buf, "Marginal Rate", r.MarginalRate)
	line(buf, "Take-Home Pay", r.TakeHomePay)
	line(buf, "Quarterly Payment", r.QuarterlyPayment)
	fmt.Fprintln(buf)
}

func writeQuarterly(buf *bytes.Buffer, p *domain.QuarterlyPlan) {
	fmt.Fprintln(buf, "QUARTERLY ESTIMATED PAYMENTS")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	line(buf, "Annual Tax", p.AnnualTax)
	line(buf, "Withheld To Date", p.YTDWithheld)
	line(buf, "Remaining", p.RemainingTax)
	for _, inst := range p.Installments {
		fmt.Fprintf(buf, "  %s  %-24s %16s\n", inst.Quarter, inst.DueDateLabel, FormatCurrency(inst.AmountDue))
	}
	line(buf, "Safe Harbor", p.SafeHarborAmount)
	for _, a := range p.RecommendedActions {
		fmt.Fprintf(buf, "  → %s\n", a)
	}
	fmt.Fprintln(buf)
}

func writeOptimization(buf *bytes.Buffer, r *domain.ExpenseOptimizationResult) {
	fmt.Fprintln(buf, "EXPENSE OPTIMIZATION")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	line(buf, "Revenue", r.Revenue)
	line(buf, "Total Expenses", r.TotalExpenses)
	line(buf, "Net Income", r.NetIncome)
	fmt.Fprintf(buf, "  %-28s %16s\n", "Profit Margin:", FormatPercentage(r.ProfitMargin))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "  %-12s %14s %9s %10s  %s\n", "Category", "Amount", "Current", "Benchmark", "Status")
	for _, a := range r.Categories {
		fmt.Fprintf(buf, "  %-12s %14s %9s %10s  %s\n",
			a.Category, FormatCurrency(a.Amount), FormatRate(a.CurrentRatio), FormatRate(a.BenchmarkRatio), a.Status)
	}
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(buf)
		for _, rec := range r.Recommendations {
			fmt.Fprintf(buf, "  → %s (%s of revenue vs %s benchmark)\n",
				rec.Action, FormatRate(rec.CurrentRatio), FormatRate(rec.RecommendedRatio))
		}
	}
	fmt.Fprintln(buf)
	line(buf, "Reasonable Maximum", r.MaxRecommendedDeductions)
	if len(r.ScaledExpenses) > 0 {
		fmt.Fprintln(buf, "  Expenses exceed the reasonable maximum; scaled amounts:")
		categories := make([]string, 0, len(r.ScaledExpenses))
		for c := range r.ScaledExpenses {
			categories = append(categories, string(c))
		}
		sort.Strings(categories)
		for _, c := range categories {
			line(buf, "  "+c, r.ScaledExpenses[domain.ExpenseCategory(c)])
		}
	}
	fmt.Fprintln(buf)
}

func writeRecommendation(buf *bytes.Buffer, r *domain.ExpenseRecommendation) {
	fmt.Fprintln(buf, "RECOMMENDED DEDUCTIBLE EXPENSES")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	line(buf, "Revenue", r.Revenue)
	line(buf, "Current Expenses", r.CurrentExpenses)
	for _, s := range r.Suggested {
		fmt.Fprintf(buf, "  %-26s %6s %14s  %s\n", s.Category, FormatRate(s.Percentage), FormatCurrency(s.Amount), s.Description)
	}
	line(buf, "Total Recommended", r.TotalRecommended)
	line(buf, fmt.Sprintf("Tax Savings at %s", FormatRate(r.AssumedMarginalRate)), r.PotentialTaxSavings)
	if len(r.Tips) > 0 {
		fmt.Fprintln(buf, "\n  Tips:")
		for _, t := range r.Tips {
			fmt.Fprintf(buf, "  • %s\n", t)
		}
	}
	if len(r.Suggestions) > 0 {
		fmt.Fprintln(buf, "\n  Suggestions:")
		for _, s := range r.Suggestions {
			fmt.Fprintf(buf, "  → %s\n", s)
		}
	}
	fmt.Fprintf(buf, "\n  %s\n\n", r.Disclaimer)
}
