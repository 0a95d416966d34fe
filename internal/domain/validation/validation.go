// Package validation contains pure well-formedness checks for user input.
// The functions here have no dependencies on other layers.
package validation

import (
	"regexp"
	"strings"

	"accounts/internal/errors"

	"golang.org/x/net/idna"
)

// ErrEmptyPassword is returned when a password is empty or whitespace-only.
// All other rule failures report plain invalidity without distinguishing the rule.
var ErrEmptyPassword = errors.New("password should not be empty")

var (
	emailDomainPattern = regexp.MustCompile(`(@)(.+)$`)
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

	hasLowerChar   = regexp.MustCompile(`[a-z]`)
	hasUpperChar   = regexp.MustCompile(`[A-Z]`)
	hasMinMaxChars = regexp.MustCompile(`^.{8,23}$`)
	hasNumber      = regexp.MustCompile(`[0-9]`)
	hasSymbols     = regexp.MustCompile(`[!@#$%^&*()_+=\[{\]};:<>|./?,-]`)
)

// IsValidEmail reports whether the given string is a plausible email address.
// The domain part is IDN-normalized to ASCII first so internationalized
// domains validate. Any normalization failure means invalid, never an error;
// the matcher itself is linear-time, so no input can stall validation.
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}

	normalized, ok := normalizeDomain(email)
	if !ok {
		return false
	}

	return emailPattern.MatchString(normalized)
}

// normalizeDomain converts the domain portion of the address to its ASCII
// (punycode) form. Returns false when the domain cannot be mapped.
func normalizeDomain(email string) (string, bool) {
	ok := true
	normalized := emailDomainPattern.ReplaceAllStringFunc(email, func(match string) string {
		ascii, err := idna.Lookup.ToASCII(match[1:])
		if err != nil {
			ok = false

			return match
		}

		return "@" + ascii
	})

	return normalized, ok
}

// IsValidPassword reports whether a password satisfies the strength rules:
// at least one lowercase letter, one uppercase letter, one digit, one symbol
// from the fixed punctuation set, and a length between 8 and 23 characters.
// An empty or whitespace-only password is an error, not a rule failure.
func IsValidPassword(password string) (bool, error) {
	if strings.TrimSpace(password) == "" {
		return false, ErrEmptyPassword
	}

	if !hasLowerChar.MatchString(password) {
		return false, nil
	}
	if !hasUpperChar.MatchString(password) {
		return false, nil
	}
	if !hasMinMaxChars.MatchString(password) {
		return false, nil
	}
	if !hasNumber.MatchString(password) {
		return false, nil
	}
	if !hasSymbols.MatchString(password) {
		return false, nil
	}

	return true, nil
}
