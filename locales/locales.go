// Package locales embeds the storefront's message files.
package locales

import "embed"

// FS holds en.yaml and es.yaml.
//
//go:embed *.yaml
var FS embed.FS
