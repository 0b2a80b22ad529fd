package middlewares

import (
	"github.com/dmitrymomot/storefront/internal"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// LanguageCookie remembers the visitor's explicit language choice.
const LanguageCookie = "lang"

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	Extractor    internal.Extractor
	extractorSet bool
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nExtractor replaces the language lookup chain.
func WithI18nExtractor(ext internal.Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// FromAcceptLanguage returns a source that negotiates the Accept-Language
// header against the bundle's languages.
func FromAcceptLanguage(b *i18n.Bundle) internal.ExtractorSource {
	n := i18n.NewNegotiator(b)
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return n.Negotiate(header), true
	}
}

// I18n resolves the request language (the lang cookie, then Accept-Language,
// then the bundle default) and stores the language and a Translator in the
// request context.
func I18n(b *i18n.Bundle, opts ...I18nOption) internal.Middleware {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromCookie(LanguageCookie),
			FromAcceptLanguage(b),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok || !b.Supports(lang) {
				lang = b.DefaultLanguage()
			}

			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(b, lang))
			c.Set(internal.LanguageKey{}, lang)

			return next(c)
		}
	}
}

// GetTranslator returns the request Translator, or nil without the I18n middleware.
func GetTranslator(c internal.Context) *i18n.Translator {
	if v, ok := c.Get(internal.TranslatorKey{}).(*i18n.Translator); ok {
		return v
	}
	return nil
}

// GetLanguage returns the resolved language, or "" without the I18n middleware.
func GetLanguage(c internal.Context) string {
	if v, ok := c.Get(internal.LanguageKey{}).(string); ok {
		return v
	}
	return ""
}

// LanguageExtractor adds "lang" to log entries.
func LanguageExtractor() logger.ContextExtractor {
	return logger.FromContext(internal.LanguageKey{}, "lang")
}
