package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in minor currency units (cents).
// Integer cents keep the per-kind price multipliers exact; a base price of
// 1000.00 at 110% is 1100.00 with no floating-point drift.
type Money int64

// MoneyFromCents builds a Money from an amount already expressed in cents.
func MoneyFromCents(cents int64) Money {
	return Money(cents)
}

// MoneyFromMajor builds a Money from whole currency units (e.g. 1200 → 1200.00).
func MoneyFromMajor(units int64) Money {
	return Money(units * 100)
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// MulInt multiplies the amount by a whole number, e.g. a per-person price
// by a party size.
func (m Money) MulInt(n int) Money {
	return m * Money(n)
}

// MulPercent multiplies the amount by pct/100. The trip price multipliers
// (110, 130, 150) produce exact results for any base price divisible by
// whole cents after scaling; remainders round half up.
func (m Money) MulPercent(pct int64) Money {
	scaled := int64(m) * pct
	if scaled >= 0 {
		return Money((scaled + 50) / 100)
	}
	return Money((scaled - 50) / 100)
}

// ParseMoney parses a decimal string such as "1200", "1200.5" or "1200.00"
// into cents. At most two fraction digits are accepted; anything else fails
// with ErrInvalidArgument.
func ParseMoney(s string) (Money, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	negative := strings.HasPrefix(whole, "-")
	if negative {
		whole = whole[1:]
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidArgument, s)
	}
	cents := units * 100
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("%w: amount %q has more than two decimal places", ErrInvalidArgument, s)
		}
		f, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: malformed amount %q", ErrInvalidArgument, s)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += int64(f)
	}
	if negative {
		cents = -cents
	}
	return Money(cents), nil
}

// String formats the amount with two decimal places, e.g. "2200.00".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
