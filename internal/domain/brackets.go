package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is one step of a progressive table. A nil UpperBound marks the
// final bracket, which absorbs all remaining income.
type TaxBracket struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upperBound,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket has no ceiling
func (b TaxBracket) IsUnbounded() bool { return b.UpperBound == nil }

// BracketTable is an ordered sequence of brackets, ascending by upper bound
type BracketTable []TaxBracket

// Validate checks the table invariants: non-empty, strictly increasing bounds,
// rates in [0,1], and exactly one unbounded bracket in last position.
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	one := decimal.NewFromInt(1)
	prev := decimal.Zero
	for i, b := range t {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(one) {
			return fmt.Errorf("bracket %d: rate %s outside [0,1]", i, b.Rate.String())
		}
		last := i == len(t)-1
		if b.IsUnbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the final bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: final bracket must be unbounded", i)
		}
		if b.UpperBound.LessThanOrEqual(prev) {
			return fmt.Errorf("bracket %d: upper bound %s not above %s", i, b.UpperBound.String(), prev.String())
		}
		prev = *b.UpperBound
	}
	return nil
}

// TopRate returns the rate of the final bracket
func (t BracketTable) TopRate() decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	return t[len(t)-1].Rate
}

// Bound is a convenience for building tables in code
func Bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// BracketContribution records the income taxed inside one bracket
type BracketContribution struct {
	BracketIndex     int              `json:"bracketIndex"`
	LowerBound       decimal.Decimal  `json:"lowerBound"`
	UpperBound       *decimal.Decimal `json:"upperBound,omitempty"`
	Rate             decimal.Decimal  `json:"rate"` // fraction
	TaxableInBracket decimal.Decimal  `json:"taxableInBracket"`
	TaxFromBracket   decimal.Decimal  `json:"taxFromBracket"`
}

// RangeLabel renders the bracket range, e.g. "$11,600 - $47,150" or "$609,350+"
func (c BracketContribution) RangeLabel() string {
	if c.UpperBound == nil {
		return FormatDollars(c.LowerBound, 0) + "+"
	}
	return FormatDollars(c.LowerBound, 0) + " - " + FormatDollars(*c.UpperBound, 0)
}

// groupThousands inserts commas into an unsigned integer string
func groupThousands(s string) string {
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// TaxResult is the outcome of applying a bracket table to one income
type TaxResult struct {
	FilingStatus         FilingStatus          `json:"filingStatus"`
	TaxYear              int                   `json:"taxYear"`
	GrossIncome          decimal.Decimal       `json:"grossIncome"`
	StandardDeduction    decimal.Decimal       `json:"standardDeduction"`
	TaxableIncome        decimal.Decimal       `json:"taxableIncome"`
	TotalTax             decimal.Decimal       `json:"totalTax"`
	EffectiveRate        decimal.Decimal       `json:"effectiveRate"` // fraction of gross income
	MarginalRate         decimal.Decimal       `json:"marginalRate"`  // fraction
	NetIncome            decimal.Decimal       `json:"netIncome"`
	BracketContributions []BracketContribution `json:"bracketContributions"`
}
