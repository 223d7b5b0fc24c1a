package breakeven

import (
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Target selects the quantity the solver searches for
type Target string

const (
	// TargetExpenses finds the business expenses at which the self-employed
	// total tax falls to the W-2 total tax on the same gross income
	TargetExpenses Target = "expenses"
	// TargetGrossIncome finds the self-employed gross income whose take-home
	// pay matches the W-2 take-home pay at the base gross income
	TargetGrossIncome Target = "gross_income"
)

// Targets lists every supported target
var Targets = []Target{TargetExpenses, TargetGrossIncome}

// Request defines one solver run
type Request struct {
	Base          domain.ComparisonInput `json:"-"`
	Target        Target                 `json:"target"`
	MaxIterations int                    `json:"maxIterations"`
	Tolerance     decimal.Decimal        `json:"tolerance"` // width of the final search interval, in dollars
}

// Result is the outcome of one solver run
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	// Value is the solved expenses or gross income, rounded up to the cent
	Value decimal.Decimal `json:"value"`

	// Both scenarios evaluated at Value
	W2             *domain.W2ScenarioResult     `json:"w2Scenario"`
	SelfEmployment *domain.SelfEmploymentResult `json:"selfEmploymentScenario"`

	// Change of Value from the base input
	ChangeFromBase decimal.Decimal `json:"changeFromBase"`
}

// Analysis holds the results of every target for one base input
type Analysis struct {
	Results         []*Result `json:"results"`
	Recommendations []string  `json:"recommendations"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum scenario evaluations per target
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 100,
	}
}

// Validate checks the request before any scenario is evaluated
func (r *Request) Validate() error {
	switch r.Target {
	case TargetExpenses, TargetGrossIncome:
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported target: " + string(r.Target),
		}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "tolerance cannot be negative",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
