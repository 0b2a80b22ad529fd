// Package validator checks form input with composable rules and returns
// field errors that carry translation keys.
//
// Example:
//
//	err := validator.Apply(
//	    validator.RequiredString("email", req.Email),
//	    validator.ValidEmail("email", req.Email),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//	    ve.Translate(translate)
//	}
package validator

import (
	"errors"
	"strings"
)

// ErrValidation is matched by errors.Is for any ValidationErrors value.
var ErrValidation = errors.New("validation failed")

// ValidationError is a single failed rule.
type ValidationError struct {
	TranslationValues map[string]any
	Field             string
	Message           string
	TranslationKey    string
}

// ValidationErrors collects failed rules in the order they were checked.
type ValidationErrors []ValidationError

// Error joins field messages.
func (ve ValidationErrors) Error() string {
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) true.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field failed any rule.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages for field.
func (ve ValidationErrors) Get(field string) []string {
	var out []string
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// GetErrors returns the errors for field.
func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first message for field, or "".
func (ve ValidationErrors) First(field string) string {
	for _, e := range ve {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Translate rewrites each message with fn(key, values). Errors without a
// translation key and a nil fn are left alone.
func (ve ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range ve {
		if ve[i].TranslationKey == "" {
			continue
		}
		ve[i].Message = fn(ve[i].TranslationKey, ve[i].TranslationValues)
	}
}

// Rule is one check. Check is true when the value is valid.
type Rule struct {
	Error ValidationError
	Check bool
}

// Apply evaluates rules and returns ValidationErrors when any fails.
// Only the first failing rule per field is reported.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check || errs.Has(r.Error.Field) {
			continue
		}
		errs = append(errs, r.Error)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
