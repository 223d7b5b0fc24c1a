package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxgo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProfileLoadedMsg:
		m.formModel.SetProfile(msg.Profile)
		return m, nil

	case tuimsg.CompareRequestedMsg:
		m.loading = true
		m.loadingMessage = "Comparing scenarios..."
		return m, compareCmd(m.calcEngine, msg.Input)

	case tuimsg.CompareCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResult(msg.Result)
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil

	case tuimsg.EditRequestedMsg:
		m.previousScene = m.currentScene
		m.currentScene = SceneForm
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch m.currentScene {
	case SceneForm:
		// Letters belong to the text inputs here
		if msg.String() == "esc" {
			return m, tea.Quit
		}
	case SceneResults:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneHelp} }
		}
	case SceneHelp:
		back := m.previousScene
		return m, func() tea.Msg { return NavigateMsg{Scene: back} }
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
