package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/tui/scenes"
	"github.com/rgehrsitz/taxgo/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	profilePath string
	calcEngine  *calculation.CalculationEngine

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates the application model. profilePath may be empty; when set
// the profile is loaded on Init and pre-fills the form.
func NewModel(engine *calculation.CalculationEngine, profilePath string) Model {
	return Model{
		currentScene: SceneForm,
		profilePath:  profilePath,
		calcEngine:   engine,
		formModel:    scenes.NewFormModel(nil),
		resultsModel: scenes.NewResultsModel(),
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.profilePath == "" {
		return nil
	}
	return loadProfileCmd(m.profilePath)
}

// loadProfileCmd returns a command that loads a profile file
func loadProfileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		profile, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: profile}
	}
}

// compareCmd runs the comparison off the update loop
func compareCmd(engine *calculation.CalculationEngine, in domain.ComparisonInput) tea.Cmd {
	return func() tea.Msg {
		result, err := compare.NewCompareEngine(engine).Compare(in)
		return tuimsg.CompareCompleteMsg{Result: result, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Inputs"
	case SceneResults:
		return "Comparison"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
