// Package money parses free-form price text into a numeric amount with a
// resolved currency code and display symbol.
package money

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ErrInvalidFormat is returned when no numeric value can be recovered from
// the input, even after the lenient fallback strip.
var ErrInvalidFormat = errors.New("invalid price format")

// Amount is a parsed price: a finite numeric value plus the currency it is
// denominated in. Amounts are constructed once by Parse and never mutated.
type Amount struct {
	Value          float64
	CurrencyCode   string
	CurrencySymbol string
}

// currencySymbols maps ISO currency codes to their display symbols.
// Extend as needed; unknown codes simply render without a symbol.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"TRY": "₺",
	"IRR": "﷼",
	"SEK": "kr",
}

// pricePattern recognizes an optional leading 3-letter currency code, an
// optional currency symbol, a numeric token (sign, digits, thousands commas,
// decimal point), and an optional trailing 3-letter currency code.
var pricePattern = regexp.MustCompile(`([A-Z]{3})?\s*([$¥£€₺﷼]?)\s*([-+0-9.,]+)\s*([A-Z]{3})?`)

// fallbackStrip removes everything that cannot be part of a plain number.
var fallbackStrip = regexp.MustCompile(`[^0-9.\-]`)

// symbolFor returns the display symbol for a currency code, or "" when the
// code has no mapped symbol.
func symbolFor(code string) string {
	return currencySymbols[strings.ToUpper(code)]
}

// Parse extracts a numeric amount and currency from price text. The input
// may be a string or a number; nil fails. When no currency code appears in
// the text, defaultCurrency is used.
//
// Currency code precedence: leading code > trailing code > default.
// Symbol precedence: symbol mapped from the resolved code > symbol present
// in the text > symbol mapped from the default currency > "".
func Parse(price any, defaultCurrency string) (Amount, error) {
	if price == nil {
		return Amount{}, fmt.Errorf("%w: nil input", ErrInvalidFormat)
	}

	s := strings.TrimSpace(cast.ToString(price))
	s = strings.ReplaceAll(s, "\u00a0", " ") // normalize non-breaking spaces

	defaultCode := strings.ToUpper(strings.TrimSpace(defaultCurrency))

	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return parseFallback(s, defaultCode)
	}

	leadCode, literalSymbol, numeric, trailCode := m[1], m[2], m[3], m[4]

	code := defaultCode
	if leadCode != "" {
		code = leadCode
	} else if trailCode != "" {
		code = trailCode
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(numeric, ",", ""), 64)
	if err != nil {
		return parseFallback(s, defaultCode)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return Amount{}, fmt.Errorf("%w: non-finite value in %q", ErrInvalidFormat, s)
	}

	return Amount{
		Value:          value,
		CurrencyCode:   code,
		CurrencySymbol: resolveSymbol(code, literalSymbol, defaultCode),
	}, nil
}

// parseFallback strips every character that is not a digit, dot, or minus
// sign and retries the numeric conversion with the default currency.
func parseFallback(s, defaultCode string) (Amount, error) {
	cleaned := fallbackStrip.ReplaceAllString(s, "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return Amount{
		Value:          value,
		CurrencyCode:   defaultCode,
		CurrencySymbol: symbolFor(defaultCode),
	}, nil
}

func resolveSymbol(code, literalSymbol, defaultCode string) string {
	if sym := symbolFor(code); sym != "" {
		return sym
	}
	if literalSymbol != "" {
		return literalSymbol
	}
	return symbolFor(defaultCode)
}
