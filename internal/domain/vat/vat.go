// Package vat normalizes Belgian VAT numbers (BTW-nummers).
//
// User input arrives in many shapes: "BE 0473.416.418", "0473416418",
// "473416418" (legacy 9-digit form), "be0473-416-418". Normalization strips
// separators and the country prefix, left-pads the legacy form to 10 digits
// and re-prefixes "BE". The result is the natural key of the companies table,
// so normalization must be deterministic and idempotent.
package vat

import (
	"fmt"
	"strings"

	"github.com/incassopro/incasso-api/internal/domain"
)

// CountryCode prefix of every normalized number.
const CountryCode = "BE"

const localDigits = 10

// Normalize converts any accepted Belgian VAT variant to "BE" + 10 digits.
// Returns domain.ErrInvalidVAT when the remainder is not 9 or 10 digits.
func Normalize(raw string) (string, error) {
	digits, err := localPart(raw)
	if err != nil {
		return "", err
	}
	return CountryCode + digits, nil
}

// Digits returns the 10-digit local part, as used in provider URL paths.
func Digits(raw string) (string, error) {
	return localPart(raw)
}

// IsVATQuery reports whether a free-text search query looks like a VAT number
// rather than a company name, so callers can route it to enrichment.
func IsVATQuery(q string) bool {
	_, err := localPart(q)
	return err == nil
}

func localPart(raw string) (string, error) {
	s := stripSeparators(raw)
	s = strings.ToUpper(s)
	s = strings.TrimPrefix(s, CountryCode)

	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidVAT, raw)
		}
	}

	switch len(s) {
	case localDigits:
		return s, nil
	case localDigits - 1:
		// Legacy 9-digit enterprise numbers carry an implicit leading zero.
		return "0" + s, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidVAT, raw)
	}
}

func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '.', '-':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
