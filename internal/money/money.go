package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cents is a monetary amount in minor units (e.g. centavos).
// Totals are accumulated as integers so repeated line math never drifts.
type Cents int64

// ParseDecimal converts a decimal price string ("15", "15.5", "15.50")
// into minor units without going through binary floating point.
func ParseDecimal(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var total Cents
	for _, digits := range []string{whole, frac} {
		for _, r := range digits {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid amount %q", s)
			}
			total = total*10 + Cents(r-'0')
		}
	}

	if negative {
		total = -total
	}
	return total, nil
}

// UnmarshalJSON accepts catalog prices written as plain JSON numbers.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDecimal(s)
	if err != nil {
		return fmt.Errorf("failed to parse price: %w", err)
	}
	*c = parsed
	return nil
}

// MarshalJSON renders the amount back as a decimal number.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// String renders the amount as an unadorned decimal, e.g. "15.50".
func (c Cents) String() string {
	amount := c
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// Float converts to major units for wire payloads that expect a number.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// Formatter renders amounts with a currency symbol and locale-aware
// digit grouping, mirroring what the storefront shows the customer.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for a BCP 47 locale and an ISO 4217
// currency code, e.g. ("es-MX", "MXN").
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", locale, err)
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  currencySymbol(strings.ToUpper(strings.TrimSpace(currencyCode))),
	}, nil
}

// Format renders e.g. Cents(4500) as "$45.00".
func (f *Formatter) Format(c Cents) string {
	amount := c
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return f.printer.Sprintf("%s%s%d.%s", sign, f.symbol, amount/100, fmt.Sprintf("%02d", amount%100))
}

func currencySymbol(code string) string {
	switch code {
	case "MXN", "USD":
		return "$"
	case "EUR":
		return "€"
	case "JPY":
		return "¥"
	default:
		return code + " "
	}
}
