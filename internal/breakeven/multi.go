package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Analyze solves every target for one base input and summarizes them
func (s *Solver) Analyze(ctx context.Context, base domain.ComparisonInput) (*Analysis, error) {
	analysis := &Analysis{}
	for _, target := range Targets {
		result, err := s.Solve(ctx, Request{
			Base:          base,
			Target:        target,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		})
		if err != nil {
			return nil, fmt.Errorf("break-even %s: %w", target, err)
		}
		analysis.Results = append(analysis.Results, result)
	}
	analysis.Recommendations = recommendations(base, analysis.Results)
	return analysis, nil
}

// Result returns the result for a target, or nil
func (a *Analysis) Result(target Target) *Result {
	for _, r := range a.Results {
		if r.Request.Target == target {
			return r
		}
	}
	return nil
}

func recommendations(base domain.ComparisonInput, results []*Result) []string {
	var recs []string
	for _, r := range results {
		switch r.Request.Target {
		case TargetExpenses:
			if r.ChangeFromBase.IsPositive() {
				recs = append(recs, fmt.Sprintf("Deductible business expenses of %s (%s more than entered) bring self-employment tax down to the W-2 level",
					domain.FormatDollars(r.Value, 0), domain.FormatDollars(r.ChangeFromBase, 0)))
			} else {
				recs = append(recs, "Your business expenses already bring self-employment tax to or below the W-2 level")
			}
		case TargetGrossIncome:
			if !r.ChangeFromBase.IsPositive() {
				continue
			}
			premium := decimal.Zero
			if base.GrossIncome.IsPositive() {
				premium = r.ChangeFromBase.Div(base.GrossIncome).Mul(decimal.NewFromInt(100))
			}
			recs = append(recs, fmt.Sprintf("Charge about %s%% more (%s gross) to match W-2 take-home pay",
				premium.StringFixed(1), domain.FormatDollars(r.Value, 0)))
		}
	}
	return recs
}
