package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal compares by value so "85000" equals "85000.00"
func assertDecimal(t *testing.T, label, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", label, want, got.String())
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Rules, "Should load rules")
	assert.NotNil(t, engine.FICACalc, "Should initialize FICA calculator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, config.DefaultTaxYear, engine.TaxYear())
}

func TestNewCalculationEngineForYear(t *testing.T) {
	engine, err := NewCalculationEngineForYear(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, engine.TaxYear())

	engine, err = NewCalculationEngineForYear(1980)
	assert.Nil(t, engine)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_LogsRejectedInput(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.ComputeMarginalTax(dec("-1"), domain.FilingSingle)
	require.Error(t, err)
	assert.Contains(t, logger.messages, "WARN: rejected input: %v")
}

func TestCalculationEngine_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.ComputeMarginalTax(dec("50000"), domain.FilingSingle)
	require.NoError(t, err)
	assert.Empty(t, logger.messages, "Debug output is off by default")

	engine.Debug = true
	_, err = engine.ComputeMarginalTax(dec("50000"), domain.FilingSingle)
	require.NoError(t, err)
	assert.NotEmpty(t, logger.messages)
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
