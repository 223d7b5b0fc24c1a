package domain

import "github.com/shopspring/decimal"

// FormatDollars renders an amount with a dollar sign, thousands separators and
// the given number of decimal places, e.g. "$1,234.56" or "-$2,001".
func FormatDollars(amount decimal.Decimal, places int32) string {
	s := amount.StringFixed(places)
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign = "-"
		s = s[1:]
	}
	whole, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			whole, frac = s[:i], s[i:]
			break
		}
	}
	return sign + "$" + groupThousands(whole) + frac
}
