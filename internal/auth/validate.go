package auth

import "regexp"

// emailRegex is a syntactic check, not a full RFC validator: anything of the
// form something@something.something passes, unusual TLDs included.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// minPasswordLength is the only strength requirement; no complexity rules.
const minPasswordLength = 6

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidPassword reports whether s meets the minimum length
func IsValidPassword(s string) bool {
	return len(s) >= minPasswordLength
}
