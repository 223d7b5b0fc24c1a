package config

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// ParseProfileJSON reads a JSON request body into a profile. Both the profile
// field names and the legacy API names (income, sep_ira_contribution,
// ibc_contribution) are accepted. Numbers are read from their JSON text so no
// precision is lost on the way into decimal.
func ParseProfileJSON(data []byte) (*domain.Profile, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse JSON: malformed document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("failed to parse JSON: top level must be an object")
	}

	profile := &domain.Profile{
		Name:    doc.Get("name").String(),
		TaxYear: int(doc.Get("tax_year").Int()),
	}

	if v := doc.Get("filing_status"); v.Exists() {
		status, err := domain.ParseFilingStatus(v.String())
		if err != nil {
			return nil, err
		}
		profile.FilingStatus = status
	}

	var err error
	if profile.GrossIncome, err = amountOf(doc, "gross_income", "income"); err != nil {
		return nil, err
	}
	if profile.BusinessExpenses, err = amountOf(doc, "business_expenses"); err != nil {
		return nil, err
	}
	if profile.RetirementContribution, err = amountOf(doc, "retirement_contribution", "sep_ira_contribution"); err != nil {
		return nil, err
	}
	if profile.InsuranceContribution, err = amountOf(doc, "insurance_contribution", "ibc_contribution"); err != nil {
		return nil, err
	}
	if profile.YTDWithheld, err = amountOf(doc, "ytd_withheld"); err != nil {
		return nil, err
	}
	if profile.Revenue, err = amountOf(doc, "revenue"); err != nil {
		return nil, err
	}

	if v := doc.Get("dependents"); v.Exists() {
		if v.Type != gjson.Number || v.Int() < 0 || float64(v.Int()) != v.Float() {
			return nil, domain.NewInputError("dependents", "must be a non-negative whole number")
		}
		profile.Dependents = int(v.Int())
	}

	expenses := doc.Get("expenses")
	switch {
	case !expenses.Exists():
	case expenses.IsObject():
		profile.Expenses, err = ParseExpensesJSON(expenses)
		if err != nil {
			return nil, err
		}
	case expenses.Type == gjson.Number && !doc.Get("business_expenses").Exists():
		// the simple estimate endpoint sent a single expense total
		profile.BusinessExpenses, err = decimalOf("expenses", expenses)
		if err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewInputError("expenses", "must be an object of category amounts")
	}

	return profile, nil
}

// ParseExpensesJSON converts a JSON object of category amounts into the closed
// category set, rejecting unknown keys
func ParseExpensesJSON(obj gjson.Result) (map[domain.ExpenseCategory]decimal.Decimal, error) {
	out := make(map[domain.ExpenseCategory]decimal.Decimal)
	var parseErr error
	obj.ForEach(func(key, value gjson.Result) bool {
		category, err := domain.ParseExpenseCategory(key.String())
		if err != nil {
			parseErr = err
			return false
		}
		if _, dup := out[category]; dup {
			parseErr = domain.NewInputError("expenses", fmt.Sprintf("duplicate category %q", category))
			return false
		}
		amount, err := decimalOf("expenses."+string(category), value)
		if err != nil {
			parseErr = err
			return false
		}
		out[category] = amount
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

// amountOf returns the first present key as a decimal, zero if none are present
func amountOf(doc gjson.Result, keys ...string) (decimal.Decimal, error) {
	for _, k := range keys {
		if v := doc.Get(k); v.Exists() {
			return decimalOf(k, v)
		}
	}
	return decimal.Zero, nil
}

func decimalOf(field string, v gjson.Result) (decimal.Decimal, error) {
	switch v.Type {
	case gjson.Number:
		d, err := decimal.NewFromString(v.Raw)
		if err != nil {
			return decimal.Zero, domain.NewInputError(field, fmt.Sprintf("is not a valid amount: %s", v.Raw))
		}
		return d, nil
	case gjson.String:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, domain.NewInputError(field, fmt.Sprintf("is not a valid amount: %q", v.String()))
		}
		return d, nil
	case gjson.Null:
		return decimal.Zero, nil
	}
	return decimal.Zero, domain.NewInputError(field, "must be a number")
}
