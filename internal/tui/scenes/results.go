package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/tui/components"
	"github.com/rgehrsitz/taxgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/taxgo/internal/tui/tuistyles"
)

const minCardWidth = 22

// ResultsModel shows a finished comparison: summary cards above a scrollable
// copy of the console table
type ResultsModel struct {
	result   *domain.ComparisonResult
	viewport viewport.Model
	width    int
	height   int
}

// NewResultsModel creates an empty results scene
func NewResultsModel() *ResultsModel {
	return &ResultsModel{viewport: viewport.New(80, 12)}
}

// SetResult replaces the displayed comparison
func (m *ResultsModel) SetResult(result *domain.ComparisonResult) {
	m.result = result
	if result == nil {
		m.viewport.SetContent("")
		return
	}
	tf := &compare.TableFormatter{}
	m.viewport.SetContent(tf.Format(result))
	m.viewport.GotoTop()
}

// Result returns the displayed comparison
func (m *ResultsModel) Result() *domain.ComparisonResult { return m.result }

// SetSize updates the scene dimensions; the table gets what the cards leave
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	if h := height - 14; h > 5 {
		m.viewport.Height = h
	}
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, key.NewBinding(key.WithKeys("e", "esc"))) {
			return m, func() tea.Msg { return tuimsg.EditRequestedMsg{} }
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Summary is the one-line comparison used in the status bar
func (m *ResultsModel) Summary() string {
	if m.result == nil {
		return ""
	}
	return (&compare.TableFormatter{}).FormatCompact(m.result)
}

// Cards builds the summary cards for the current result
func (m *ResultsModel) Cards() []*components.MetricCard {
	if m.result == nil {
		return nil
	}
	w2, se := m.result.W2, m.result.SelfEmployment
	cards := []*components.MetricCard{
		components.NewAmountCard("W-2 Total Tax", w2.TotalTax),
		components.NewAmountCard("Self-Employed Total Tax", se.TotalTax).WithDelta(m.result.TaxDifference, false),
		components.NewAmountCard("Self-Employed Take-Home", se.TakeHomePay).WithDelta(m.result.TakeHomeDifference, true),
	}
	if plan := m.result.QuarterlySchedule; plan != nil && len(plan.Installments) > 0 {
		cards = append(cards, components.NewAmountCard("Quarterly Payment", plan.Installments[0].AmountDue).
			WithDescription("due "+plan.Installments[0].DueDateLabel))
	}
	return cards
}

// View renders the results
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.BorderStyle.Render("No comparison yet. Press e to enter your numbers.")
	}
	help := tuistyles.HelpDescStyle.Render("↑/↓ scroll • e edit • ? help • q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderCards(),
		tuistyles.BorderStyle.Render(m.viewport.View()),
		help,
	)
}

// renderCards lays the cards out in a grid, or one per line when the
// terminal is too narrow for four bordered cards
func (m *ResultsModel) renderCards() string {
	cards := m.Cards()
	if m.width == 0 {
		return components.MetricGrid(cards, 4)
	}
	cardWidth := (m.width - 4) / 4
	if cardWidth < minCardWidth {
		lines := make([]string, len(cards))
		for i, c := range cards {
			lines[i] = c.RenderCompact()
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	for _, c := range cards {
		c.WithWidth(cardWidth - 2)
	}
	return components.MetricGrid(cards, 4)
}
