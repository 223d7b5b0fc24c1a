package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/taxgo/internal/tui/tuistyles"
)

// Form field order
const (
	FieldGrossIncome = iota
	FieldBusinessExpenses
	FieldFilingStatus
	FieldDependents
	FieldRetirement
	FieldInsurance
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Gross income",
	"Business expenses",
	"Filing status",
	"Dependents",
	"SEP-IRA contribution",
	"Insurance contribution",
}

var fieldPlaceholders = [fieldCount]string{
	"e.g., 85000",
	"e.g., 12000",
	"single | mfj | hoh",
	"0",
	"0",
	"0",
}

// FormModel collects the comparison inputs
type FormModel struct {
	inputs  []textinput.Model
	focused int
	err     string
	width   int
	height  int
}

// NewFormModel creates the form, pre-filled from a profile when one is given
func NewFormModel(profile *domain.Profile) *FormModel {
	m := &FormModel{inputs: make([]textinput.Model, fieldCount)}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 20
		ti.Width = 22
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	m.inputs[FieldFilingStatus].SetValue(string(domain.FilingSingle))
	if profile != nil {
		m.SetProfile(profile)
	}
	m.inputs[0].Focus()
	return m
}

// SetProfile fills the form from a loaded profile
func (m *FormModel) SetProfile(p *domain.Profile) {
	m.inputs[FieldGrossIncome].SetValue(p.GrossIncome.String())
	m.inputs[FieldBusinessExpenses].SetValue(p.BusinessExpenses.String())
	if p.FilingStatus != "" {
		m.inputs[FieldFilingStatus].SetValue(string(p.FilingStatus))
	}
	m.inputs[FieldDependents].SetValue(strconv.Itoa(p.Dependents))
	m.inputs[FieldRetirement].SetValue(p.RetirementContribution.String())
	m.inputs[FieldInsurance].SetValue(p.InsuranceContribution.String())
}

// SetValue sets one field, mainly for tests
func (m *FormModel) SetValue(field int, value string) {
	m.inputs[field].SetValue(value)
}

// Focused returns the index of the focused field
func (m *FormModel) Focused() int { return m.focused }

// Err returns the current validation message
func (m *FormModel) Err() string { return m.err }

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func parseAmount(field int, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
	if err != nil {
		return decimal.Zero, domain.NewInputError(fieldLabels[field], fmt.Sprintf("%q is not a number", raw))
	}
	return d, nil
}

// Input parses the form into a comparison input
func (m *FormModel) Input() (domain.ComparisonInput, error) {
	var in domain.ComparisonInput
	var err error

	if in.GrossIncome, err = parseAmount(FieldGrossIncome, m.inputs[FieldGrossIncome].Value()); err != nil {
		return in, err
	}
	if in.BusinessExpenses, err = parseAmount(FieldBusinessExpenses, m.inputs[FieldBusinessExpenses].Value()); err != nil {
		return in, err
	}
	if in.FilingStatus, err = domain.ParseFilingStatus(m.inputs[FieldFilingStatus].Value()); err != nil {
		return in, err
	}
	if raw := strings.TrimSpace(m.inputs[FieldDependents].Value()); raw != "" {
		if in.Dependents, err = strconv.Atoi(raw); err != nil {
			return in, domain.NewInputError(fieldLabels[FieldDependents], fmt.Sprintf("%q is not a whole number", raw))
		}
	}
	if in.RetirementContribution, err = parseAmount(FieldRetirement, m.inputs[FieldRetirement].Value()); err != nil {
		return in, err
	}
	if in.InsuranceContribution, err = parseAmount(FieldInsurance, m.inputs[FieldInsurance].Value()); err != nil {
		return in, err
	}
	return in, nil
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "down"))):
			m.setFocus((m.focused + 1) % len(m.inputs))
			return m, textinput.Blink

		case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
			m.setFocus((m.focused + len(m.inputs) - 1) % len(m.inputs))
			return m, textinput.Blink

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			in, err := m.Input()
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.err = ""
			return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{Input: in} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
}

// View renders the form
func (m *FormModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("W-2 vs Self-Employment") + "\n\n")
	for i, in := range m.inputs {
		label := tuistyles.FieldLabelStyle
		if i == m.focused {
			label = tuistyles.FocusedFieldLabelStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[i]), in.View()) + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + tuistyles.ErrorStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n" + tuistyles.HelpDescStyle.Render("tab/↓ next • shift+tab/↑ previous • enter compare • esc quit"))
	return tuistyles.ActiveBorderStyle.Render(b.String())
}
