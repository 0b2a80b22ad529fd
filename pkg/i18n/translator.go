package i18n

// Translator binds a Bundle to one language.
type Translator struct {
	bundle *Bundle
	lang   string
}

// NewTranslator returns a Translator for lang; unsupported languages use the default.
func NewTranslator(b *Bundle, lang string) *Translator {
	if !b.Supports(lang) {
		lang = b.DefaultLanguage()
	}
	return &Translator{bundle: b, lang: lang}
}

// Language returns the bound language.
func (t *Translator) Language() string {
	return t.lang
}

// T translates key.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.bundle.T(t.lang, key, placeholders...)
}

// Tn translates a plural key for n.
func (t *Translator) Tn(key string, n int, placeholders ...M) string {
	return t.bundle.Tn(t.lang, key, n, placeholders...)
}

// TranslateValidation adapts T to validator.ValidationErrors.Translate.
func (t *Translator) TranslateValidation(key string, values map[string]any) string {
	return t.T(key, M(values))
}

// Toggle returns the language the page switches to: the next supported
// language after the current one, wrapping around.
func Toggle(b *Bundle, current string) string {
	langs := b.Languages()
	for i, l := range langs {
		if l == current {
			return langs[(i+1)%len(langs)]
		}
	}
	return b.DefaultLanguage()
}
