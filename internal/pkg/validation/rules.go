package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Slug pattern: lower-case words joined by single hyphens
	SlugPattern = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

	// Currency pattern: ISO 4217 alphabetic code
	CurrencyPattern = `^[A-Z]{3}$`

	// Title validation min/max length
	TitleMinLength = 2
	TitleMaxLength = 200

	// SlugMaxLength bounds slugs so they stay readable in URLs
	SlugMaxLength = 120
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Slug     *regexp.Regexp
	Currency *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Slug:     regexp.MustCompile(SlugPattern),
	Currency: regexp.MustCompile(CurrencyPattern),
}

// StringValidation validates a single required string value
type StringValidation struct {
	Value   string
	MinLen  int
	MaxLen  int
	Pattern *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
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
	value := strings.TrimSpace(v.Value)
	if value == "" {
		return false
	}

	if v.MinLen > 0 && len([]rune(value)) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len([]rune(value)) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(value) {
		return false
	}

	return true
}

// IsSlug reports whether s is a valid URL slug
func IsSlug(s string) bool {
	return NewStringValidation(s).WithMaxLength(SlugMaxLength).WithPattern(CompiledPatterns.Slug).Validate()
}

// IsTitle reports whether s is an acceptable display title
func IsTitle(s string) bool {
	return NewStringValidation(s).WithMinLength(TitleMinLength).WithMaxLength(TitleMaxLength).Validate()
}

// IsCurrency reports whether s is an upper-case ISO 4217 code
func IsCurrency(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Currency).Validate()
}

// Slugify derives a slug from a title
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
