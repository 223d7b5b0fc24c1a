package tui

import "github.com/rgehrsitz/taxgo/internal/domain"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg carries a profile read from disk
type ProfileLoadedMsg struct {
	Profile *domain.Profile
}
