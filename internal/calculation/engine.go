package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs every tax computation against one year's rules.
// The rules are read-only, so an engine may be shared between goroutines
// once SetLogger has been called.
type CalculationEngine struct {
	Rules    *domain.TaxYearRules
	FICACalc *FICACalculator
	Logger   Logger
	Debug    bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates an engine for the default tax year
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(config.DefaultRules())
}

// NewCalculationEngineForYear creates an engine for an embedded tax year
func NewCalculationEngineForYear(year int) (*CalculationEngine, error) {
	rules, err := config.RulesForYear(year)
	if err != nil {
		return nil, err
	}
	return NewCalculationEngineWithRules(rules), nil
}

// NewCalculationEngineWithRules creates an engine for caller supplied rules,
// typically loaded with config.LoadRulesFromFile
func NewCalculationEngineWithRules(rules *domain.TaxYearRules) *CalculationEngine {
	return &CalculationEngine{
		Rules:    rules,
		FICACalc: NewFICACalculator(rules.FICA),
		Logger:   NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// TaxYear returns the year of the loaded rules
func (ce *CalculationEngine) TaxYear() int {
	return ce.Rules.TaxYear
}

func (ce *CalculationEngine) debugf(format string, args ...interface{}) {
	if ce.Debug {
		ce.Logger.Debugf(format, args...)
	}
}

// reject logs and returns an input error
func (ce *CalculationEngine) reject(err error) error {
	ce.Logger.Warnf("rejected input: %v", err)
	return err
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewInputError(field, fmt.Sprintf("cannot be negative, got %s", v.String()))
	}
	return nil
}

func requireDependents(n int) error {
	if n < 0 {
		return domain.NewInputError("dependents", fmt.Sprintf("cannot be negative, got %d", n))
	}
	return nil
}

// ratio returns num/den, or zero when den is not positive
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den)
}

// liability rounds a tax line item up to the cent
func liability(d decimal.Decimal) decimal.Decimal {
	return d.RoundCeil(2)
}
