package entity

import "strings"

// NormalizeEmail trims surrounding whitespace and lower-cases the address,
// so " Test@Example.com " and "test@example.com" are the same subscriber.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
