// Package tuimsg holds the messages scenes send to the root model, kept apart
// to avoid an import cycle between tui and tui/scenes.
package tuimsg

import "github.com/rgehrsitz/taxgo/internal/domain"

// CompareRequestedMsg asks the root model to run a comparison
type CompareRequestedMsg struct {
	Input domain.ComparisonInput
}

// CompareCompleteMsg carries the outcome of a comparison
type CompareCompleteMsg struct {
	Result *domain.ComparisonResult
	Err    error
}

// EditRequestedMsg returns from the results to the input form
type EditRequestedMsg struct{}
