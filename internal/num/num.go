// Package num implements the lenient number handling used by every calculator
// input: parsing never fails (unparsable input becomes NaN) and formatting
// follows the browser rules the values were originally entered and displayed
// with, so that round-tripping a value through a text field is stable.
package num

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// ParseFloat parses the longest numeric prefix of s, ignoring leading
// whitespace. "12abc" → 12, ".5" → 0.5, "" → NaN, "abc" → NaN.
// "Infinity" with an optional sign yields ±Inf.
func ParseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return math.NaN()
	}

	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i

	// Exponent is only consumed when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		// Out of range values come back as ±Inf together with ErrRange.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// ParseInt parses a base-10 integer prefix of s. "12.9" → 12, "x" → NaN.
func ParseInt(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return math.NaN()
	}
	return math.Trunc(v)
}

// Or returns def when v is NaN or zero, otherwise v.
func Or(v, def float64) float64 {
	if math.IsNaN(v) || v == 0 {
		return def
	}
	return v
}

// Finite returns def when v is NaN or infinite.
func Finite(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// RoundHalfUp rounds to the nearest integer, ties towards +Inf.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FormatNumber renders v in shortest round-trip form: 22 → "22",
// 0.1+0.2 → "0.30000000000000004", 1e21 → "1e+21".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + sign + exp
}

// FormatFixed renders v with exactly digits fractional digits. Rounding is
// done on the exact binary value with ties going up, so 1.005 → "1.00"
// (1.005 is stored as 1.00499…) and 0.125 → "0.13".
func FormatFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.Abs(v) >= 1e21 || math.IsInf(v, 0):
		return FormatNumber(v)
	}
	if digits < 0 {
		digits = 0
	}

	neg := v < 0
	exact := new(big.Float).SetFloat64(math.Abs(v)).Text('f', 1100)
	intPart, frac, _ := strings.Cut(exact, ".")
	frac += strings.Repeat("0", digits+1)

	kept := []byte(intPart + frac[:digits])
	if frac[digits] >= '5' {
		kept = incrementDecimal(kept)
	}

	intLen := len(kept) - digits
	out := string(kept[:intLen])
	if digits > 0 {
		out += "." + string(kept[intLen:])
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatFixedTrim is FormatFixed with trailing zeros removed: 12.50 → "12.5",
// 3.00 → "3", -0.00 → "0".
func FormatFixedTrim(v float64, digits int) string {
	return FormatNumber(ParseFloat(FormatFixed(v, digits)))
}

func incrementDecimal(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
