package sanitizer

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
)

// ErrNotStructPointer is returned by Apply for anything but a pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: expected pointer to struct")

// Apply rewrites the string fields of the struct pointed to by v according
// to their `sanitize` tag, a comma separated list applied left to right:
//
//	trim         trim surrounding whitespace
//	lower        lowercase
//	strip_html   remove markup
//	single_line  replace line breaks with spaces
//	collapse     squeeze runs of whitespace into one space
//
// Example:
//
//	type ContactRequest struct {
//	    Email string `form:"email" sanitize:"trim,lower"`
//	}
func Apply(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	rv = rv.Elem()
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		tag, ok := field.Tag.Lookup("sanitize")
		if !ok || tag == "-" || !field.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() != reflect.String {
			continue
		}
		fv.SetString(applyRules(fv.String(), strings.Split(tag, ",")))
	}
	return nil
}

func applyRules(s string, rules []string) string {
	for _, rule := range rules {
		switch strings.TrimSpace(rule) {
		case "trim":
			s = strings.TrimSpace(s)
		case "lower":
			s = strings.ToLower(s)
		case "strip_html":
			s = StripHTML(s)
		case "single_line":
			s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
		case "collapse":
			s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
		}
	}
	return s
}
