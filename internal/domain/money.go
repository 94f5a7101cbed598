package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	weeksPerMonth      = decimal.RequireFromString("4.33")
	fortnightsPerMonth = decimal.RequireFromString("2.17")
)

// ParsePrice parses a user-entered amount such as "$1,234.50".
// The amount must be greater than zero and is rounded to cents.
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, NewValidationError("price is required")
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, NewValidationError("price must be a valid amount")
	}
	if !price.IsPositive() {
		return decimal.Zero, NewValidationError("price must be greater than zero")
	}
	return price.Round(2), nil
}

// MonthlyRate projects a per-visit price onto an approximate monthly amount.
// ok is false for one-time service.
func MonthlyRate(price decimal.Decimal, freq Frequency) (rate decimal.Decimal, ok bool) {
	switch freq {
	case FrequencyWeekly:
		return price.Mul(weeksPerMonth).Round(2), true
	case FrequencyBiweekly:
		return price.Mul(fortnightsPerMonth).Round(2), true
	case FrequencyMonthly:
		return price.Round(2), true
	case FrequencyOneTime:
		return decimal.Zero, false
	}
	return decimal.Zero, false
}

// FormatMoney renders an amount as dollars, e.g. "$1,234.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}
