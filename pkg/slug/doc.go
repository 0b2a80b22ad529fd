// Package slug turns product names into URL-safe path segments.
//
// Latin diacritics are folded to ASCII, everything that is not a letter or a
// digit becomes a single separator, and the result is lowercased:
//
//	slug.Make("Used Catcher's Helmet", slug.CustomReplace(map[string]string{"'": ""}))
//	// Output: "used-catchers-helmet"
//
//	slug.Make("Guante Wilson A2000 Usado (Niño)")
//	// Output: "guante-wilson-a2000-usado-nino"
//
// MaxLength trims the slug on a rune boundary and drops a trailing separator:
//
//	slug.Make("Used Composite Bat", slug.MaxLength(9))
//	// Output: "used-comp"
//
// Unsupported scripts (Cyrillic, CJK and so on) are treated as separators.
package slug
