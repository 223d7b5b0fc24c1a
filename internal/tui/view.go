package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render(fmt.Sprintf("TAXGO - %d Federal Tax Comparison", m.calcEngine.TaxYear()))
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(m.currentScene.String()))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneForm:
		shortcuts = []string{formatShortcut("enter", "compare"), formatShortcut("esc", "quit")}
	case SceneResults:
		shortcuts = []string{formatShortcut("e", "edit"), formatShortcut("?", "help"), formatShortcut("q", "quit")}
		if summary := m.resultsModel.Summary(); summary != "" {
			shortcuts = append([]string{summary}, shortcuts...)
		}
	default:
		shortcuts = []string{formatShortcut("any key", "back")}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("TAXGO compares the federal tax of earning the same gross income\n")
	b.WriteString("as a W-2 employee and as a self-employed filer.\n\n")
	rows := [][2]string{
		{"tab / ↓", "next field"},
		{"shift+tab / ↑", "previous field"},
		{"enter", "run the comparison"},
		{"↑ / ↓, pgup / pgdn", "scroll the comparison table"},
		{"e / esc", "edit inputs"},
		{"?", "show this help"},
		{"q / ctrl+c", "quit"},
	}
	for _, r := range rows {
		b.WriteString(HelpKeyStyle.Width(22).Render(r[0]) + HelpDescStyle.Render(r[1]) + "\n")
	}
	b.WriteString("\nFiling status accepts single, mfj or hoh.")
	return BorderStyle.Render(b.String())
}
