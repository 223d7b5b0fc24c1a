package calculation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBracketTax(t *testing.T) {
	table := domain.BracketTable{
		{UpperBound: domain.Bound(10000), Rate: dec("0.10")},
		{UpperBound: domain.Bound(40000), Rate: dec("0.20")},
		{Rate: dec("0.30")},
	}

	tests := []struct {
		name          string
		taxable       string
		wantTax       string
		wantBrackets  int
		wantLastRange string
	}{
		{"zero income", "0", "0", 0, ""},
		{"inside first bracket", "5000", "500", 1, "$0 - $10,000"},
		{"exactly at first bound", "10000", "1000", 1, "$0 - $10,000"},
		{"one cent over bound", "10000.01", "1000.002", 2, "$10,000 - $40,000"},
		{"top bracket", "100000", "25000", 3, "$40,000+"},
		{"huge income", "1000000000", "299995000", 3, "$40,000+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, contributions := ComputeBracketTax(dec(tt.taxable), table)
			assertDecimal(t, "tax", tt.wantTax, tax)
			require.Len(t, contributions, tt.wantBrackets)
			if tt.wantBrackets > 0 {
				assert.Equal(t, tt.wantLastRange, contributions[len(contributions)-1].RangeLabel())
			}
		})
	}
}

func TestComputeMarginalTax_Single50000(t *testing.T) {
	engine := NewCalculationEngine()

	result, err := engine.ComputeMarginalTax(dec("50000"), domain.FilingSingle)
	require.NoError(t, err)

	assertDecimal(t, "standard deduction", "14600", result.StandardDeduction)
	assertDecimal(t, "taxable", "35400", result.TaxableIncome)
	assertDecimal(t, "total tax", "4016", result.TotalTax)
	assertDecimal(t, "marginal", "0.12", result.MarginalRate)
	assertDecimal(t, "net", "45984", result.NetIncome)
	assertDecimal(t, "effective", "0.08032", result.EffectiveRate)

	require.Len(t, result.BracketContributions, 2)
	assertDecimal(t, "first bracket", "1160", result.BracketContributions[0].TaxFromBracket)
	assertDecimal(t, "second bracket", "2856", result.BracketContributions[1].TaxFromBracket)
	assert.Equal(t, "$11,600 - $47,150", result.BracketContributions[1].RangeLabel())
}

func TestComputeMarginalTax_BelowStandardDeduction(t *testing.T) {
	engine := NewCalculationEngine()

	for _, income := range []string{"0", "10000", "14600"} {
		result, err := engine.ComputeMarginalTax(dec(income), domain.FilingSingle)
		require.NoError(t, err)
		assert.True(t, result.TotalTax.IsZero(), "income %s", income)
		assert.Empty(t, result.BracketContributions, "income %s", income)
		assert.True(t, result.MarginalRate.IsZero(), "No bracket touched means no marginal rate")
		assert.True(t, result.EffectiveRate.IsZero())
	}
}

func TestComputeMarginalTax_InvalidInput(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.ComputeMarginalTax(dec("-100"), domain.FilingSingle)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	result, err := engine.ComputeMarginalTax(dec("50000"), domain.FilingStatus("widowed"))
	assert.Nil(t, result, "No fallback to the single table")
	var inputErr *domain.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "filing_status", inputErr.Field)
}

func TestBracketProperties(t *testing.T) {
	engine := NewCalculationEngine()
	rng := rand.New(rand.NewSource(20240415))

	for _, status := range domain.FilingStatuses {
		table, err := engine.Rules.BracketsFor(status)
		require.NoError(t, err)
		top := table.TopRate()

		incomes := make([]decimal.Decimal, 0, 200)
		for i := 0; i < 200; i++ {
			cents := rng.Int63n(200_000_000)
			incomes = append(incomes, decimal.New(cents, -2))
		}

		for _, income := range incomes {
			result, err := engine.ComputeMarginalTax(income, status)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, c := range result.BracketContributions {
				assert.True(t, c.TaxableInBracket.IsPositive(), "No empty contributions")
				sum = sum.Add(c.TaxableInBracket)
			}
			assert.True(t, sum.Equal(result.TaxableIncome), "%s %s: brackets sum %s, taxable %s",
				status, income.String(), sum.String(), result.TaxableIncome.String())

			assert.False(t, result.EffectiveRate.IsNegative())
			assert.True(t, result.EffectiveRate.LessThanOrEqual(top), "%s %s: effective %s above top %s",
				status, income.String(), result.EffectiveRate.String(), top.String())

			higher, err := engine.ComputeMarginalTax(income.Add(decimal.New(rng.Int63n(5_000_000)+1, -2)), status)
			require.NoError(t, err)
			assert.True(t, higher.TotalTax.GreaterThanOrEqual(result.TotalTax), "Tax must not fall as income rises")
		}
	}
}

func TestCalculateFICA_UnknownStatus(t *testing.T) {
	fc := NewFICACalculator(domain.FICARules{
		SocialSecurityRate:     dec("0.062"),
		SocialSecurityWageBase: dec("168600"),
		MedicareRate:           dec("0.0145"),
		AdditionalMedicareRate: dec("0.009"),
		AdditionalMedicareThresholds: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle: dec("200000"),
		},
	})

	fica, err := fc.CalculateFICA(dec("250000"), domain.FilingSingle)
	require.NoError(t, err)
	assertDecimal(t, "additional medicare", "450", fica.AdditionalMedicare)

	_, err = fc.CalculateFICA(dec("250000"), domain.FilingMarriedJointly)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
