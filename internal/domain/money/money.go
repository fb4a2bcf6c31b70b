// Package money parses and formats the locale-formatted amounts the storefront
// renders (e.g. "12 345,67 FCFA").
package money

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the suffix appended to displayed amounts.
const Currency = "FCFA"

// ErrNoDigits is returned when an amount string carries no integer digits.
var ErrNoDigits = errors.New("amount has no digits")

// Parse extracts a numeric amount from a display string. Everything except
// digits, commas and periods is dropped (including thousands spaces and the
// currency label), commas are read as decimal points, and at most two
// fractional digits of the first decimal group are kept.
//
// Parse is tolerant rather than strict: "10.000,50" yields 10.00 because the
// first separator wins.
func Parse(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' || r == '.':
			b.WriteByte('.')
		}
	}

	parts := strings.Split(b.String(), ".")
	whole := parts[0]
	if whole == "" {
		return decimal.Zero, errors.Wrapf(ErrNoDigits, "parse %q", s)
	}
	if len(parts) == 1 {
		return decimal.RequireFromString(whole), nil
	}

	frac := parts[1]
	if len(frac) > 2 {
		frac = frac[:2]
	}
	if frac == "" {
		return decimal.RequireFromString(whole), nil
	}
	return decimal.RequireFromString(whole + "." + frac), nil
}

// groupSeparator is the French thousands separator as x/text renders it:
// U+00A0, where browsers' fr-FR toLocaleString emits U+202F. Parse accepts
// both.
var groupSeparator = func() string {
	s := message.NewPrinter(language.French).Sprintf("%d", 1000)
	return strings.TrimSuffix(strings.TrimPrefix(s, "1"), "000")
}()

// Format renders an amount with French thousands grouping and no fractional
// digits, rounding half away from zero. Amounts of any size are rendered
// exactly.
func Format(d decimal.Decimal) string {
	digits := d.Round(0).String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Display renders an amount followed by the currency label.
func Display(d decimal.Decimal) string {
	return Format(d) + " " + Currency
}

// Label appends the currency label to a raw amount string as received from
// the server.
func Label(raw string) string {
	return raw + " " + Currency
}

// Summary is the order summary shown next to the checkout form.
type Summary struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
}

// Total returns subtotal plus delivery fee.
func (s Summary) Total() decimal.Decimal {
	return s.Subtotal.Add(s.DeliveryFee)
}

// ParseSummary parses the rendered subtotal and a raw fee into a Summary.
func ParseSummary(subtotal, fee string) (Summary, error) {
	sub, err := Parse(subtotal)
	if err != nil {
		return Summary{}, errors.Wrap(err, "subtotal")
	}
	f, err := Parse(fee)
	if err != nil {
		return Summary{}, errors.Wrap(err, "delivery fee")
	}
	return Summary{Subtotal: sub, DeliveryFee: f}, nil
}
