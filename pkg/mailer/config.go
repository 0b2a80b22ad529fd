package mailer

// Config holds mailer configuration.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Storefront request"`
	Layout          string `env:"MAILER_LAYOUT" envDefault:"base.html"`
}
