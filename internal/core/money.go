// Package core holds the ledger domain model and the money arithmetic the
// analysis pipeline depends on.
//
// Amounts are stored as integer paise (hundredths of a rupee) to keep
// aggregation exact; rounding is half-up (away from zero), matching how
// financial ratios are conventionally reported.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in paise.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Rupees returns the rupee value as a float64 for display purposes.
// Use Cents for calculations to avoid floating-point drift.
func (m Money) Rupees() float64 {
	return float64(m.Cents) / 100.0
}

// ParseDecimalToCents converts a decimal string to paise with half-up
// rounding on the third fractional digit. Both dot and comma separators are
// accepted. Negative and zero amounts are rejected; ledger entries are
// always positive, the kind carries the sign.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// DivRoundHalfUp divides cents by div, rounding half away from zero.
// div must be positive.
func DivRoundHalfUp(cents, div int64) int64 {
	if cents >= 0 {
		return (2*cents + div) / (2 * div)
	}
	return -((-2*cents + div) / (2 * div))
}

// RatioPercent returns part/whole as a percentage, with the underlying ratio
// rounded half-up at the fourth fractional digit before scaling by 100.
// Returns 0 when whole is not positive.
func RatioPercent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(DivRoundHalfUp(part*10000, whole)) / 100.0
}

// FormatRupees renders paise as a rupee string with thousands separators and
// two decimal places, e.g. 10000000 -> "₹100,000.00".
func FormatRupees(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	out := "₹" + b.String() + "." + twoDigits(frac)
	if neg {
		return "-" + out
	}
	return out
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
