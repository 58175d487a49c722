package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// maxAmountIntegerDigits caps the digits left of the decimal point.
	maxAmountIntegerDigits = 30
	// maxAmountScale caps the digits right of the decimal point.
	maxAmountScale = 30
)

// ParseAmount converts a monetary string to a decimal. Empty, "null",
// non-finite or malformed input yields zero so that a single bad value
// cannot taint a running total.
func ParseAmount(raw string) decimal.Decimal {
	d, ok := ParseNullAmount(raw)
	if !ok {
		return decimal.Zero
	}
	return d
}

// ParseNullAmount is like ParseAmount but reports whether raw held a usable
// number. Values beyond maxAmountIntegerDigits or maxAmountScale are not
// usable, since summing them would expand huge exponents into huge integers.
func ParseNullAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "undefined") {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		// Accept float notations decimal rejects, but never NaN or Inf.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		d = decimal.NewFromFloat(f)
	}

	return boundAmount(d)
}

// boundAmount inspects only the coefficient length and exponent, so it never
// materialises the value it rejects.
func boundAmount(d decimal.Decimal) (decimal.Decimal, bool) {
	if d.Sign() == 0 {
		return decimal.Zero, true
	}

	exp := int64(d.Exponent())
	if exp < -maxAmountScale {
		return decimal.Zero, false
	}
	if d.NumDigits() > maxAmountIntegerDigits+maxAmountScale {
		return decimal.Zero, false
	}
	if int64(d.NumDigits())+exp > maxAmountIntegerDigits {
		return decimal.Zero, false
	}

	return d, true
}

func amountOrZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}
