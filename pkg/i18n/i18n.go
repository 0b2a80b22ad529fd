// Package i18n holds the storefront's English and Spanish copy.
//
// Messages are flat dotted keys ("cart.added") with {{name}} placeholders.
// Plural messages use ".one" and ".other" suffixes and receive {{count}}.
package i18n

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Supported languages.
const (
	English = "en"
	Spanish = "es"
)

var (
	ErrEmptyLanguage = errors.New("i18n: language is required")
	ErrUnsupported   = errors.New("i18n: unsupported language")
	ErrInvalidFile   = errors.New("i18n: invalid translation file")
)

// M carries placeholder values.
type M map[string]any

// Bundle is an immutable set of messages per language; safe for concurrent use.
type Bundle struct {
	messages    map[string]map[string]string // lang -> key -> text
	missing     func(lang, key string)
	defaultLang string
	languages   []string
}

// Option configures a Bundle during construction.
type Option func(*Bundle) error

// New builds a Bundle. English is the default unless WithDefaultLanguage says otherwise.
func New(opts ...Option) (*Bundle, error) {
	b := &Bundle{
		messages:    make(map[string]map[string]string),
		defaultLang: English,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("i18n: apply option: %w", err)
		}
	}

	langs := slices.Sorted(maps.Keys(b.messages))
	langs = slices.DeleteFunc(langs, func(l string) bool { return l == b.defaultLang })
	b.languages = append([]string{b.defaultLang}, langs...)
	return b, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(b *Bundle) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		b.defaultLang = lang
		return nil
	}
}

// WithMessages adds messages for lang. Nested maps are flattened into dotted keys.
func WithMessages(lang string, messages map[string]any) Option {
	return func(b *Bundle) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		b.add(lang, messages)
		return nil
	}
}

// WithMissingKeyHandler is called when a key is absent from both the requested
// and the default language.
func WithMissingKeyHandler(fn func(lang, key string)) Option {
	return func(b *Bundle) error {
		b.missing = fn
		return nil
	}
}

// Languages lists the loaded languages, default first.
func (b *Bundle) Languages() []string {
	return slices.Clone(b.languages)
}

// DefaultLanguage returns the fallback language.
func (b *Bundle) DefaultLanguage() string {
	return b.defaultLang
}

// Supports reports whether lang has messages or is the default.
func (b *Bundle) Supports(lang string) bool {
	return slices.Contains(b.languages, lang)
}

// Keys lists the message keys defined for lang, sorted.
func (b *Bundle) Keys(lang string) []string {
	return slices.Sorted(maps.Keys(b.messages[lang]))
}

// T returns the message for key in lang, falling back to the default
// language and finally to the key itself.
func (b *Bundle) T(lang, key string, placeholders ...M) string {
	text, ok := b.lookup(lang, key)
	if !ok {
		b.reportMissing(lang, key)
		return key
	}
	return replace(text, merge(nil, placeholders))
}

// Tn returns the plural form of key for n.
func (b *Bundle) Tn(lang, key string, n int, placeholders ...M) string {
	form := PluralForm(lang, n)
	text, ok := b.lookup(lang, key+"."+form)
	if !ok && form != PluralOther {
		text, ok = b.lookup(lang, key+"."+PluralOther)
	}
	if !ok {
		b.reportMissing(lang, key)
		return key
	}
	return replace(text, merge(M{"count": n}, placeholders))
}

func (b *Bundle) lookup(lang, key string) (string, bool) {
	if text, ok := b.messages[lang][key]; ok {
		return text, true
	}
	if base, _, found := strings.Cut(lang, "-"); found {
		if text, ok := b.messages[base][key]; ok {
			return text, true
		}
	}
	text, ok := b.messages[b.defaultLang][key]
	return text, ok
}

func (b *Bundle) reportMissing(lang, key string) {
	if b.missing != nil {
		b.missing(lang, key)
	}
}

func (b *Bundle) add(lang string, messages map[string]any) {
	dst, ok := b.messages[lang]
	if !ok {
		dst = make(map[string]string)
		b.messages[lang] = dst
	}
	flatten(dst, messages, "")
}

func flatten(dst map[string]string, src map[string]any, prefix string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(dst, val, key)
		case string:
			dst[key] = val
		default:
			dst[key] = fmt.Sprint(val)
		}
	}
}

func merge(base M, extra []M) M {
	if base == nil {
		base = M{}
	}
	for _, m := range extra {
		maps.Copy(base, m)
	}
	return base
}

// replace substitutes {{name}} placeholders; unknown ones are left as is.
func replace(text string, values M) string {
	if len(values) == 0 || !strings.Contains(text, "{{") {
		return text
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
