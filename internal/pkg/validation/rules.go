package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// EmailPattern accepts a dotted local part (no leading or trailing dot)
	// and a dotted or hyphenated domain ending in a 2-6 letter TLD.
	EmailPattern = `(?i)^([a-z0-9_+]([a-z0-9_+.]*[a-z0-9_+])?)@([a-z0-9]+([\-.][a-z0-9]+)*\.[a-z]{2,6})$`

	EmailMaxLength      = 255
	CourseNameMaxLength = 255
	PhoneMaxLength      = 32
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// StringValidation checks a single string value against a set of rules.
// Empty values never pass.
type StringValidation struct {
	Value   string
	MaxLen  int
	Pattern *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return false
	}
	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// IsValidEmail reports whether email is well formed.
func IsValidEmail(email string) bool {
	return NewStringValidation(email).
		WithMaxLength(EmailMaxLength).
		WithPattern(CompiledPatterns.Email).
		Validate()
}

// IsValidCourseName rejects blank and oversized names.
func IsValidCourseName(name string) bool {
	return NewStringValidation(strings.TrimSpace(name)).
		WithMaxLength(CourseNameMaxLength).
		Validate()
}
