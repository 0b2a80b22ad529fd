package validator

import (
	"cmp"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// emailPattern accepts "something@something.something" without whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func rule(ok bool, field, message, key string, values map[string]any) Rule {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return Rule{
		Check: ok,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// RequiredString fails for empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return rule(strings.TrimSpace(value) != "", field, "is required", "validation.required", nil)
}

// MinLenString fails when value has fewer than n characters.
func MinLenString(field, value string, n int) Rule {
	return rule(utf8.RuneCountInString(value) >= n, field, "is too short", "validation.min_length", map[string]any{"min": n})
}

// MaxLenString fails when value has more than n characters.
func MaxLenString(field, value string, n int) Rule {
	return rule(utf8.RuneCountInString(value) <= n, field, "is too long", "validation.max_length", map[string]any{"max": n})
}

// LenString fails unless value has exactly n characters.
func LenString(field, value string, n int) Rule {
	return rule(utf8.RuneCountInString(value) == n, field, "has the wrong length", "validation.exact_length", map[string]any{"length": n})
}

// ValidEmail fails for values that do not look like an email address.
// Empty values pass; combine with RequiredString.
func ValidEmail(field, value string) Rule {
	ok := value == "" || emailPattern.MatchString(value)
	return rule(ok, field, "must be a valid email address", "validation.email", nil)
}

// ValidPhone accepts digits with common separators and at least 7 digits.
// Empty values pass; combine with RequiredString.
func ValidPhone(field, value string) Rule {
	ok := true
	if value != "" {
		digits := 0
		for _, r := range value {
			switch {
			case unicode.IsDigit(r):
				digits++
			case strings.ContainsRune(" +-().", r):
			default:
				ok = false
			}
		}
		ok = ok && digits >= 7 && digits <= 15
	}
	return rule(ok, field, "must be a valid phone number", "validation.phone", nil)
}

// MinNum fails when value < n.
func MinNum[T cmp.Ordered](field string, value, n T) Rule {
	return rule(value >= n, field, "is too small", "validation.min", map[string]any{"min": n})
}

// MaxNum fails when value > n.
func MaxNum[T cmp.Ordered](field string, value, n T) Rule {
	return rule(value <= n, field, "is too large", "validation.max", map[string]any{"max": n})
}
