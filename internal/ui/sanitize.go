package ui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// spaceClass matches the same whitespace as a browser's \s, including NBSP and other Unicode spaces.
const spaceClass = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	disallowedChars = regexp.MustCompile(`[^a-zA-Z` + spaceClass + `'.]`)
	whitespaceRuns  = regexp.MustCompile(`[` + spaceClass + `]+`)
	allowedChar     = regexp.MustCompile(`^[a-zA-Z` + spaceClass + `'.]$`)
)

// Sanitize reduces a free-text name to letters, single spaces, apostrophes and periods.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	s := disallowedChars.ReplaceAllString(input, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// KeyAllowed reports whether a keypress may reach a position field.
// Named keys such as "Backspace" or "ArrowLeft" always pass.
func KeyAllowed(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return true
	}
	return allowedChar.MatchString(key)
}
