package utils

import "strings"

// NormalizePhone reduces a phone number to a canonical local form so that
// "+8801711223344", "8801711223344" and "01711-223344" all compare equal.
// Non-digit characters are stripped and the Bangladesh country code is
// folded into the leading-zero local format.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	// 8801XXXXXXXXX -> 01XXXXXXXXX
	if strings.HasPrefix(digits, "880") && len(digits) > 3 {
		digits = "0" + strings.TrimPrefix(digits, "880")
	}
	return digits
}
