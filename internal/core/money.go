// Package core holds the domain model shared by every layer: debts,
// transactions, money amounts and the category taxonomy.
//
// Money is kept as integer satang (1/100 baht) so that aggregation over
// long transaction histories never drifts; conversion to a decimal
// representation happens only at presentation time.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToSatang converts a decimal string to satang with half-up
// rounding on the third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// The result is always positive satang. Returns an error for invalid
// formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseDecimalToSatang("12.34") -> 1234, nil
//	ParseDecimalToSatang("12,34") -> 1234, nil
//	ParseDecimalToSatang("12.345") -> 1234, nil (rounds down)
//	ParseDecimalToSatang("12.346") -> 1235, nil (rounds up)
func ParseDecimalToSatang(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
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
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracSatang int64 = 0
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracSatang = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracSatang += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracSatang++
				}
			}
		}
	}
	satang := iv*100 + fracSatang
	if satang <= 0 {
		return 0, ErrInvalidAmount
	}
	return satang, nil
}

// Baht returns the baht value as a float64 for display purposes.
// Use satang for calculations to avoid floating-point precision issues.
func (m Money) Baht() float64 {
	return float64(m.Satang) / 100.0
}

// DecimalString renders the amount with exactly two decimal places,
// e.g. 123456 satang -> "1234.56". Used by the CSV exporter.
func (m Money) DecimalString() string {
	satang := m.Satang
	neg := satang < 0
	if neg {
		satang = -satang
	}
	s := strconv.FormatInt(satang/100, 10) + "." + pad2(satang%100)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// MarshalJSON renders the amount as a bare satang integer.
func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, m.Satang, 10), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Satang = v
	return nil
}

func (m Money) Validate() error {
	if m.Satang <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
