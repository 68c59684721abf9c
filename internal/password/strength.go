package password

import (
	"strings"
	"unicode"
)

// Rule names one password strength requirement.
type Rule string

const (
	RuleMinLength Rule = "length"
	RuleUppercase Rule = "uppercase"
	RuleLowercase Rule = "lowercase"
	RuleDigit     Rule = "digit"
	RuleSpecial   Rule = "special"
	RuleMaxLength Rule = "max_length"
)

const (
	MinLength = 8
	// MaxBytes is the bcrypt input limit.
	MaxBytes = 72
)

// Specials is the accepted set of special characters.
const Specials = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var messages = map[Rule]string{
	RuleMinLength: "Password must be at least 8 characters long",
	RuleUppercase: "Password must contain at least one uppercase letter",
	RuleLowercase: "Password must contain at least one lowercase letter",
	RuleDigit:     "Password must contain at least one number",
	RuleSpecial:   "Password must contain at least one special character",
	RuleMaxLength: "Password must be at most 72 bytes long",
}

// StrengthError reports the first rule a password fails.
type StrengthError struct {
	Rule Rule
}

func (e *StrengthError) Error() string {
	return messages[e.Rule]
}

// ValidateStrength checks the rules in order and returns a *StrengthError for
// the first one that fails.
func ValidateStrength(password string) error {
	if len([]rune(password)) < MinLength {
		return &StrengthError{Rule: RuleMinLength}
	}
	if !strings.ContainsFunc(password, isASCIIUpper) {
		return &StrengthError{Rule: RuleUppercase}
	}
	if !strings.ContainsFunc(password, isASCIILower) {
		return &StrengthError{Rule: RuleLowercase}
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return &StrengthError{Rule: RuleDigit}
	}
	if !strings.ContainsAny(password, Specials) {
		return &StrengthError{Rule: RuleSpecial}
	}
	if len(password) > MaxBytes {
		return &StrengthError{Rule: RuleMaxLength}
	}
	return nil
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
