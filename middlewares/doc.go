// Package middlewares provides the storefront's HTTP middleware.
//
// # Request ID
//
// RequestID tags each request with an ID, reusing a sane upstream
// X-Request-ID. Pair it with RequestIDExtractor so every log line carries it:
//
//	log, flush := logger.New(cfg.Log, middlewares.RequestIDExtractor(), middlewares.LanguageExtractor())
//	app := storefront.New(
//	    storefront.WithLogger(log),
//	    storefront.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into *PanicError for the app's ErrorHandler.
//
// # I18n
//
// I18n picks the page language from the "lang" cookie, then Accept-Language,
// then the bundle default, and makes c.T, c.Tn and c.Language work.
//
//	storefront.WithMiddleware(
//	    middlewares.Recover(),
//	    middlewares.RequestID(),
//	    middlewares.I18n(bundle),
//	)
package middlewares
