package i18n

// Plural categories used by the storefront languages.
const (
	PluralOne   = "one"
	PluralOther = "other"
)

// PluralForm picks the CLDR category for n. English and Spanish both use
// "one" for exactly 1 and "other" for everything else, including 0.
func PluralForm(_ string, n int) string {
	if n == 1 || n == -1 {
		return PluralOne
	}
	return PluralOther
}
