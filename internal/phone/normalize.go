// Package phone normalizes phone numbers so that differently formatted
// representations of the same number compare equal.
package phone

import "strings"

// Normalize strips a number down to its digits and drops a leading US/Canada
// country code, so "+1 (555) 123-4567" and "5551234567" match. Returns ""
// when the input contains no digits.
func Normalize(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	digits := b.String()
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	return digits
}
