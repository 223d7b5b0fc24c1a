package calculation

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeBracketTax applies a progressive table to a taxable amount. The
// result is unrounded. Only brackets that receive income produce a
// contribution, so zero income yields an empty slice.
func ComputeBracketTax(taxableIncome decimal.Decimal, table domain.BracketTable) (decimal.Decimal, []domain.BracketContribution) {
	total := decimal.Zero
	var contributions []domain.BracketContribution
	if !taxableIncome.IsPositive() {
		return total, contributions
	}

	prevUpper := decimal.Zero
	for i, bracket := range table {
		if taxableIncome.LessThanOrEqual(prevUpper) {
			break
		}
		top := taxableIncome
		if !bracket.IsUnbounded() {
			top = decimal.Min(taxableIncome, *bracket.UpperBound)
		}
		inBracket := top.Sub(prevUpper)
		if inBracket.IsPositive() {
			tax := inBracket.Mul(bracket.Rate)
			total = total.Add(tax)
			contributions = append(contributions, domain.BracketContribution{
				BracketIndex:     i,
				LowerBound:       prevUpper,
				UpperBound:       bracket.UpperBound,
				Rate:             bracket.Rate,
				TaxableInBracket: inBracket,
				TaxFromBracket:   tax,
			})
		}
		if bracket.IsUnbounded() {
			break
		}
		prevUpper = *bracket.UpperBound
	}
	return total, contributions
}

// marginalRate is the rate of the last bracket touched, zero when none was
func marginalRate(contributions []domain.BracketContribution) decimal.Decimal {
	if len(contributions) == 0 {
		return decimal.Zero
	}
	return contributions[len(contributions)-1].Rate
}

// incomeTax computes the bracket tax on income less the standard deduction
type incomeTax struct {
	standardDeduction decimal.Decimal
	taxableIncome     decimal.Decimal
	exact             decimal.Decimal
	contributions     []domain.BracketContribution
}

func (ce *CalculationEngine) computeIncomeTax(income decimal.Decimal, status domain.FilingStatus) (*incomeTax, error) {
	table, err := ce.Rules.BracketsFor(status)
	if err != nil {
		return nil, err
	}
	std, err := ce.Rules.StandardDeductionFor(status)
	if err != nil {
		return nil, err
	}
	taxable := decimal.Max(decimal.Zero, income.Sub(std))
	exact, contributions := ComputeBracketTax(taxable, table)
	ce.debugf("income tax: income=%s std=%s taxable=%s tax=%s brackets=%d",
		income.String(), std.String(), taxable.String(), exact.String(), len(contributions))
	return &incomeTax{
		standardDeduction: std,
		taxableIncome:     taxable,
		exact:             exact,
		contributions:     contributions,
	}, nil
}

// ComputeMarginalTax applies the filing status' standard deduction and
// bracket table to an income
func (ce *CalculationEngine) ComputeMarginalTax(income decimal.Decimal, status domain.FilingStatus) (*domain.TaxResult, error) {
	if err := requireNonNegative("income", income); err != nil {
		return nil, ce.reject(err)
	}
	it, err := ce.computeIncomeTax(income, status)
	if err != nil {
		return nil, ce.reject(err)
	}

	totalTax := liability(it.exact)
	return &domain.TaxResult{
		FilingStatus:         status,
		TaxYear:              ce.Rules.TaxYear,
		GrossIncome:          income,
		StandardDeduction:    it.standardDeduction,
		TaxableIncome:        it.taxableIncome,
		TotalTax:             totalTax,
		EffectiveRate:        ratio(it.exact, income),
		MarginalRate:         marginalRate(it.contributions),
		NetIncome:            income.Sub(totalTax),
		BracketContributions: it.contributions,
	}, nil
}
