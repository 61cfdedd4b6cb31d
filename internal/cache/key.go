package cache

import "strings"

// KeyPart normalizes a free-text key component: lowercased, trimmed, with
// internal whitespace runs collapsed to a single underscore.
func KeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
