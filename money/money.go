// Package money formats amounts for the shop's single locale (id-ID, Rupiah).
package money

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the currency prefix used in every formatted amount.
const Symbol = "Rp"

var printer = message.NewPrinter(language.Indonesian)

// Format renders amount as "Rp 1.234.567".
func Format(amount int64) string {
	return Symbol + " " + Number(amount)
}

// Number renders n with id-ID thousands grouping and no currency symbol.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatAny coerces v to an integer amount (see Coerce) and formats it.
func FormatAny(v any) string {
	return Format(Coerce(v))
}

// Coerce converts loosely typed input to an integer amount. Missing or
// non-numeric input yields zero; floats are rounded half away from zero.
func Coerce(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return clampUint(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return clampUint(n)
	case float32:
		return round(float64(n))
	case float64:
		return round(n)
	case string:
		return Parse(n)
	case []byte:
		return Parse(string(n))
	default:
		return 0
	}
}

// Parse reads a price attribute such as "2500000" or "2500000.5".
// Anything unparseable is treated as zero.
func Parse(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return round(f)
}

func round(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	r := math.Round(f)
	if r >= math.MaxInt64 {
		return math.MaxInt64
	}
	if r <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(r)
}

func clampUint(u uint64) int64 {
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}
