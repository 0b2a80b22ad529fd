package slug

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type options struct {
	separator string
	maxLength int
	replace   map[string]string
}

// Option configures Make.
type Option func(*options)

// MaxLength limits the slug to n runes. Zero means no limit.
func MaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// Separator sets the string placed between words. Defaults to "-".
func Separator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// CustomReplace applies replacements before slugification, longest key first.
func CustomReplace(m map[string]string) Option {
	return func(o *options) { o.replace = m }
}

// letters without a canonical decomposition.
var folds = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "ae", "œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o", "ł", "l", "Ł", "l", "đ", "d", "Đ", "d",
)

// Make returns the slug for s. It is empty when s has no letters or digits.
func Make(s string, opts ...Option) string {
	o := options{separator: "-"}
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.replace) > 0 {
		keys := slices.SortedFunc(maps.Keys(o.replace), func(a, b string) int {
			return len(b) - len(a)
		})
		for _, k := range keys {
			s = strings.ReplaceAll(s, k, o.replace[k])
		}
	}

	s = folds.Replace(s)
	if folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s); err == nil {
		s = folded
	}

	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(s) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteString(o.separator)
		}
		gap = false
		b.WriteRune(r)
	}

	out := b.String()
	if o.maxLength > 0 && len(out) > o.maxLength {
		out = strings.TrimSuffix(out[:o.maxLength], o.separator)
	}
	return out
}
