package calculation

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// FICACalculator computes employee-side FICA
type FICACalculator struct {
	Rules domain.FICARules
}

// NewFICACalculator creates a FICA calculator for one year's rules
func NewFICACalculator(rules domain.FICARules) *FICACalculator {
	return &FICACalculator{Rules: rules}
}

// CalculateFICA returns the social security, medicare and additional medicare
// line items for one employee's wages. The additional medicare threshold
// depends on filing status.
func (fc *FICACalculator) CalculateFICA(wages decimal.Decimal, status domain.FilingStatus) (domain.FICABreakdown, error) {
	threshold, err := fc.Rules.AdditionalMedicareThresholdFor(status)
	if err != nil {
		return domain.FICABreakdown{}, err
	}
	if !wages.IsPositive() {
		return domain.FICABreakdown{}, nil
	}

	ssWages := decimal.Min(wages, fc.Rules.SocialSecurityWageBase)
	ss := liability(ssWages.Mul(fc.Rules.SocialSecurityRate))
	medicare := liability(wages.Mul(fc.Rules.MedicareRate))
	additional := decimal.Zero
	if wages.GreaterThan(threshold) {
		additional = liability(wages.Sub(threshold).Mul(fc.Rules.AdditionalMedicareRate))
	}

	return domain.FICABreakdown{
		SocialSecurity:     ss,
		Medicare:           medicare,
		AdditionalMedicare: additional,
		Total:              ss.Add(medicare).Add(additional),
	}, nil
}
