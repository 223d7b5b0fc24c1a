package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds break-even points between the W-2 and self-employment
// scenarios by bisection. Both searched quantities move the self-employed
// figures monotonically, so bisection always converges.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

var two = decimal.NewFromInt(2)

// Solve runs the search described by the request
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	w2, err := s.CalcEngine.ComputeW2Scenario(req.Base.GrossIncome, req.Base.FilingStatus, req.Base.Dependents)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate W-2 scenario", Cause: err}
	}

	switch req.Target {
	case TargetExpenses:
		return s.solveExpenses(ctx, req, w2)
	default:
		return s.solveGrossIncome(ctx, req, w2)
	}
}

// search tracks one bisection run
type search struct {
	ctx        context.Context
	req        Request
	iterations int
}

func (sr *search) next(op string) error {
	select {
	case <-sr.ctx.Done():
		return sr.ctx.Err()
	default:
	}
	if sr.iterations >= sr.req.MaxIterations {
		return &BreakEvenError{
			Operation: op,
			Message:   fmt.Sprintf("search did not converge after %d iterations", sr.req.MaxIterations),
		}
	}
	sr.iterations++
	return nil
}

func (s *Solver) evaluate(op string, in domain.ComparisonInput) (*domain.SelfEmploymentResult, error) {
	se, err := s.CalcEngine.ComputeSelfEmploymentScenario(in.SelfEmployment())
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to calculate self-employment scenario", Cause: err}
	}
	return se, nil
}

// solveExpenses finds the smallest business expenses at which the
// self-employed total tax is at or below the W-2 total tax. Expenses equal to
// the gross income leave no tax at all, so the search range is [0, gross].
func (s *Solver) solveExpenses(ctx context.Context, req Request, w2 *domain.W2ScenarioResult) (*Result, error) {
	const op = "solve_expenses"
	sr := &search{ctx: ctx, req: req}
	in := req.Base
	above := func(expenses decimal.Decimal) (bool, error) {
		if err := sr.next(op); err != nil {
			return false, err
		}
		in.BusinessExpenses = expenses
		se, err := s.evaluate(op, in)
		if err != nil {
			return false, err
		}
		return se.TotalTax.GreaterThan(w2.TotalTax), nil
	}

	lo, hi := decimal.Zero, req.Base.GrossIncome
	over, err := above(lo)
	if err != nil {
		return nil, err
	}
	if !over {
		return s.finish(req, sr, w2, decimal.Zero, "no business expenses needed")
	}
	for hi.Sub(lo).GreaterThan(req.Tolerance) {
		mid := lo.Add(hi).Div(two)
		over, err := above(mid)
		if err != nil {
			return nil, err
		}
		if over {
			lo = mid
		} else {
			hi = mid
		}
	}
	return s.finish(req, sr, w2, hi.RoundCeil(2), fmt.Sprintf("converged within %s", domain.FormatDollars(req.Tolerance, 2)))
}

// solveGrossIncome finds the smallest self-employed gross income whose
// take-home pay reaches the W-2 take-home pay. Business expenses and
// contributions stay as given.
func (s *Solver) solveGrossIncome(ctx context.Context, req Request, w2 *domain.W2ScenarioResult) (*Result, error) {
	const op = "solve_gross_income"
	sr := &search{ctx: ctx, req: req}
	in := req.Base
	short := func(gross decimal.Decimal) (bool, error) {
		if err := sr.next(op); err != nil {
			return false, err
		}
		in.GrossIncome = gross
		se, err := s.evaluate(op, in)
		if err != nil {
			return false, err
		}
		return se.TakeHomePay.LessThan(w2.TakeHomePay), nil
	}

	lo := req.Base.GrossIncome
	below, err := short(lo)
	if err != nil {
		return nil, err
	}
	if !below {
		return s.finish(req, sr, w2, lo, "self-employment already matches W-2 take-home pay")
	}

	// Grow the upper bound until it clears the target
	step := decimal.Max(lo, decimal.NewFromInt(1000))
	hi := lo.Add(step)
	for {
		below, err := short(hi)
		if err != nil {
			return nil, err
		}
		if !below {
			break
		}
		lo, hi = hi, hi.Add(step)
		step = step.Mul(two)
	}

	for hi.Sub(lo).GreaterThan(req.Tolerance) {
		mid := lo.Add(hi).Div(two)
		below, err := short(mid)
		if err != nil {
			return nil, err
		}
		if below {
			lo = mid
		} else {
			hi = mid
		}
	}
	return s.finish(req, sr, w2, hi.RoundCeil(2), fmt.Sprintf("converged within %s", domain.FormatDollars(req.Tolerance, 2)))
}

// finish evaluates the self-employment scenario at the solved value
func (s *Solver) finish(req Request, sr *search, w2 *domain.W2ScenarioResult, value decimal.Decimal, info string) (*Result, error) {
	in := req.Base
	base := in.BusinessExpenses
	if req.Target == TargetExpenses {
		in.BusinessExpenses = value
	} else {
		base = in.GrossIncome
		in.GrossIncome = value
	}
	se, err := s.evaluate("finish", in)
	if err != nil {
		return nil, err
	}

	s.CalcEngine.Logger.Debugf("break-even %s: %s after %d iterations", req.Target, value.String(), sr.iterations)
	return &Result{
		Request:         req,
		Success:         true,
		Iterations:      sr.iterations,
		ConvergenceInfo: info,
		Value:           value,
		W2:              w2,
		SelfEmployment:  se,
		ChangeFromBase:  value.Sub(base),
	}, nil
}
