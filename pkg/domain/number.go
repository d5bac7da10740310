package domain

import "strings"

// DefaultCountryCode is prefixed to national-format numbers during
// normalization. NANP ("1") matches the numbers the service launched with.
const DefaultCountryCode = "1"

// NormalizeNumber reduces a phone number to a canonical digits-only form
// so that flow resolution can match on equality instead of substring
// containment. It tolerates the formatting differences seen between
// dialed and stored numbers: a leading "+", the "00" international
// prefix, spaces, dashes and parentheses, and a missing country code on
// 10-digit national numbers.
func NormalizeNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	digits = strings.TrimPrefix(digits, "00")
	if len(digits) == 10 {
		digits = DefaultCountryCode + digits
	}
	return digits
}

// SameNumber reports whether two phone numbers are equal once normalized.
func SameNumber(a, b string) bool {
	na, nb := NormalizeNumber(a), NormalizeNumber(b)
	return na != "" && na == nb
}
