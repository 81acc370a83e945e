// Package numeric implements the lenient number handling policy used at the
// API boundary: absent or malformed numeric input coerces to zero instead of
// being rejected. The original product tolerated incomplete legacy records
// this way, and the policy is kept deliberately explicit and in one place.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LenientDecimal parses s as a decimal, returning zero for empty or malformed
// input.
func LenientDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LenientDecimalPtr parses the pointed-to string, returning zero for nil.
func LenientDecimalPtr(s *string) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return LenientDecimal(*s)
}
