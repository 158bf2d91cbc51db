// Package password implements the account password strength policy.
package password

import (
	"strings"
	"unicode"
)

// specialChars is the fixed set of accepted special characters.
const specialChars = "@$!%*?&"

// Validate checks pw against the strength policy and returns one message
// per violated rule. Every rule is checked independently so the caller
// can report all problems at once; an empty slice means the password is
// acceptable.
func Validate(pw string) []string {
	var violations []string

	if len(pw) < 8 {
		violations = append(violations, "password must be at least 8 characters long")
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}

	if !upper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !lower {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !digit {
		violations = append(violations, "password must contain at least one number")
	}
	if !special {
		violations = append(violations, "password must contain at least one special character (@$!%*?&)")
	}

	return violations
}
