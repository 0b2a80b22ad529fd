package i18n

import (
	"golang.org/x/text/language"
)

// Negotiator picks a supported language from an Accept-Language header.
type Negotiator struct {
	matcher   language.Matcher
	languages []string
}

// NewNegotiator builds a Negotiator for the bundle's languages. The default
// language wins when nothing matches.
func NewNegotiator(b *Bundle) *Negotiator {
	langs := b.Languages()
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	return &Negotiator{matcher: language.NewMatcher(tags), languages: langs}
}

// Negotiate returns the best supported language for header.
func (n *Negotiator) Negotiate(header string) string {
	if header == "" {
		return n.languages[0]
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return n.languages[0]
	}
	_, idx, conf := n.matcher.Match(prefs...)
	if conf == language.No {
		return n.languages[0]
	}
	return n.languages[idx]
}
