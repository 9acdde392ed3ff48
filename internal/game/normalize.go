package game

import "strings"

// Normalize trims surrounding whitespace and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether answer equals expected after normalizing both sides.
// There is no partial credit.
func Matches(answer, expected string) bool {
	return Normalize(answer) == Normalize(expected)
}
