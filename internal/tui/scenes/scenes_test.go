package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/tui/tuimsg"
)

func TestFormModel_Input(t *testing.T) {
	form := NewFormModel(nil)
	form.SetValue(FieldGrossIncome, "$85,000")
	form.SetValue(FieldBusinessExpenses, "12000")
	form.SetValue(FieldFilingStatus, "mfj")
	form.SetValue(FieldDependents, "2")

	in, err := form.Input()
	require.NoError(t, err)
	assert.True(t, in.GrossIncome.Equal(decimal.NewFromInt(85000)))
	assert.True(t, in.BusinessExpenses.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, domain.FilingMarriedJointly, in.FilingStatus)
	assert.Equal(t, 2, in.Dependents)
	assert.True(t, in.RetirementContribution.IsZero(), "empty fields are zero")
}

func TestFormModel_InputErrors(t *testing.T) {
	form := NewFormModel(nil)
	form.SetValue(FieldGrossIncome, "lots")
	_, err := form.Input()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	form.SetValue(FieldGrossIncome, "1000")
	form.SetValue(FieldFilingStatus, "widowed")
	_, err = form.Input()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	form.SetValue(FieldFilingStatus, "single")
	form.SetValue(FieldDependents, "1.5")
	_, err = form.Input()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormModel_ProfilePrefill(t *testing.T) {
	form := NewFormModel(&domain.Profile{
		FilingStatus: domain.FilingHeadOfHousehold,
		GrossIncome:  decimal.NewFromInt(60000),
		Dependents:   1,
	})
	in, err := form.Input()
	require.NoError(t, err)
	assert.Equal(t, domain.FilingHeadOfHousehold, in.FilingStatus)
	assert.True(t, in.GrossIncome.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, 1, in.Dependents)
}

func TestFormModel_Navigation(t *testing.T) {
	form := NewFormModel(nil)
	assert.Equal(t, FieldGrossIncome, form.Focused())

	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FieldBusinessExpenses, form.Focused())

	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FieldInsurance, form.Focused(), "focus wraps around")
}

func TestFormModel_EnterRequestsComparison(t *testing.T) {
	form := NewFormModel(nil)
	form.SetValue(FieldGrossIncome, "50000")

	form, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.CompareRequestedMsg)
	require.True(t, ok)
	assert.True(t, msg.Input.GrossIncome.Equal(decimal.NewFromInt(50000)))
	assert.Empty(t, form.Err())

	form.SetValue(FieldGrossIncome, "abc")
	form, cmd = form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, form.Err(), "is not a number")
	assert.Contains(t, form.View(), "is not a number")
}

func TestResultsModel(t *testing.T) {
	results := NewResultsModel()
	assert.Nil(t, results.Cards())
	assert.Empty(t, results.Summary())
	assert.Contains(t, results.View(), "No comparison yet")

	result, err := compare.NewCompareEngine(calculation.NewCalculationEngine()).Compare(domain.ComparisonInput{
		GrossIncome:      decimal.NewFromInt(85000),
		BusinessExpenses: decimal.NewFromInt(12000),
		FilingStatus:     domain.FilingMarriedJointly,
		Dependents:       2,
	})
	require.NoError(t, err)
	results.SetResult(result)

	cards := results.Cards()
	require.Len(t, cards, 4)
	assert.Equal(t, "$8,734.50", cards[0].Value)
	assert.Equal(t, "$10,487.71", cards[1].Value)
	assert.Equal(t, "+$1,753", cards[1].Trend.Change)
	assert.Equal(t, "$2,621.93", cards[3].Value)
	assert.Equal(t, "W-2 tax: $8,734.50 | Self-employed tax: $10,487.71 | Difference: +$1,753.21", results.Summary())

	results.SetSize(60, 30)
	narrow := results.View()
	assert.Contains(t, narrow, "W-2 Total Tax:")
	assert.Contains(t, narrow, "Quarterly Payment:")

	results.SetSize(140, 40)
	assert.Contains(t, results.View(), "Self-Employed Take-Home")

	_, cmd := results.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, cmd)
	assert.IsType(t, tuimsg.EditRequestedMsg{}, cmd())
}
