package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays one figure of a result with an optional change line
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend is the change of a figure against the other scenario
type Trend struct {
	Up        bool
	Favorable bool
	Change    string // e.g. "+$1,753"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// NewAmountCard creates a card showing a dollar amount
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, domain.FormatDollars(amount, 2))
}

// WithDelta attaches a change line. A rising figure is favorable only when
// higherIsBetter is set, so a tax increase renders red and a take-home
// increase renders green.
func (m *MetricCard) WithDelta(delta decimal.Decimal, higherIsBetter bool) *MetricCard {
	if delta.IsZero() {
		return m
	}
	sign := "+"
	if delta.IsNegative() {
		sign = "-"
	}
	up := delta.IsPositive()
	m.Trend = &Trend{
		Up:        up,
		Favorable: up == higherIsBetter,
		Change:    sign + domain.FormatDollars(delta.Abs(), 0),
	}
	return m
}

// WithDescription adds a description line
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) trendLine() string {
	if m.Trend == nil {
		return ""
	}
	style := tuistyles.MetricTrendStyle(m.Trend.Favorable)
	return style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.Up), m.Trend.Change))
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if t := m.trendLine(); t != "" {
		content += "\n" + t
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// RenderCompact returns an inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if t := m.trendLine(); t != "" {
		out += " " + t
	}
	return out
}

// MetricGrid renders cards in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, currentRow []string
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
