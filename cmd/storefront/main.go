// Command storefront runs the storefront web server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/handlers"
	"github.com/dmitrymomot/storefront/locales"
	"github.com/dmitrymomot/storefront/middlewares"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/mailer"
	"github.com/dmitrymomot/storefront/pkg/mailer/resend"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/relay"
	"github.com/dmitrymomot/storefront/views"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, flush := logger.New(cfg.Logger,
		middlewares.RequestIDExtractor(),
		middlewares.LanguageExtractor(),
	)

	if err := run(context.Background(), cfg, log, flush); err != nil {
		log.Error("storefront stopped", "error", err)
		_ = flush(context.Background())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger, flush func(context.Context) error) error {
	runOpts := []storefront.RunOption{
		storefront.Logger(log),
		storefront.ShutdownTimeout(cfg.ShutdownTimeout),
	}

	bundle, err := i18n.New(
		i18n.WithYAMLDir(locales.FS),
		i18n.WithMissingKeyHandler(func(lang, key string) {
			log.Warn("missing translation", "lang", lang, "key", key)
		}),
	)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	htmlCache := cache.NewMemory[string](cache.WithMaxEntries(512))
	runOpts = append(runOpts, storefront.ShutdownHook(closer(htmlCache)))

	cat, err := openCatalog(cfg, htmlCache)
	if err != nil {
		return err
	}

	v, err := views.New(bundle)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	rel, err := relay.New(cfg.RelayDriver, relay.Drivers{
		EmailJS: func() (relay.Relay, error) {
			return relay.NewEmailJS(cfg.EmailJS), nil
		},
		Mail: func() (relay.Relay, error) {
			sender, err := resend.New(cfg.Resend)
			if err != nil {
				return nil, err
			}
			m := mailer.New(sender, mailer.NewRenderer(relay.Templates()), cfg.Mailer)
			return relay.NewMailRelay(m), nil
		},
		Logger:        log,
		FallbackToLog: cfg.Relay.OptimisticDelivery,
	})
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	gw := relay.NewGateway(rel, cfg.Relay, relay.WithLogger(log))
	runOpts = append(runOpts, storefront.ShutdownHook(gw.Shutdown))

	appOpts := []storefront.Option{
		storefront.WithLogger(log),
		storefront.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.I18n(bundle),
		),
		storefront.WithCookieOptions(
			storefront.WithCookieSecret(cfg.CookieSecret),
			storefront.WithCookieSecure(cfg.Secure()),
		),
	}

	var checks []storefront.HealthOption
	switch cfg.VisitorStorage {
	case StorageMemory:
		mem := cache.NewMemory[string](cache.WithDefaultTTL(cfg.VisitorTTL))
		runOpts = append(runOpts, storefront.ShutdownHook(closer(mem)))
		appOpts = append(appOpts, storefront.WithVisitorStorage(
			storefront.CachedVisitorStorage(mem, cfg.VisitorTTL, cfg.VisitorQuota)))
	case StorageRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		runOpts = append(runOpts, storefront.ShutdownHook(redis.Shutdown(client)))
		rc := cache.NewRedis[string](client, cache.StringMarshaler{}, cache.WithPrefix("storefront:visitor:"))
		appOpts = append(appOpts, storefront.WithVisitorStorage(
			storefront.CachedVisitorStorage(rc, cfg.VisitorTTL, cfg.VisitorQuota)))
		checks = append(checks, storefront.WithReadinessCheck("redis", redis.Healthcheck(client)))
	default:
		if cfg.CookieSecret == "" {
			log.Warn("COOKIE_SECRET is empty, notifications after redirects are disabled")
		}
		appOpts = append(appOpts, storefront.WithVisitorStorage(storefront.CookieVisitorStorage()))
	}

	pages := handlers.NewPages(v, bundle, cat)
	appOpts = append(appOpts,
		storefront.WithCartListener(handlers.CartNotifications(pages)),
		storefront.WithErrorHandler(handlers.ErrorHandler(pages)),
		storefront.WithNotFoundHandler(handlers.NotFound),
		storefront.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		storefront.WithHealthChecks(checks...),
		storefront.WithStaticFiles("/static/", views.Static(), "static"),
		storefront.WithHandlers(
			handlers.NewProductHandler(pages, gw),
			handlers.NewCartHandler(pages, gw),
			handlers.NewShowcaseHandler(pages, cfg.SoldPageSize),
			handlers.NewContactHandler(pages, gw),
			handlers.NewLanguageHandler(bundle),
		),
	)

	log.Info("starting storefront",
		"addr", cfg.Addr,
		"relay", cfg.RelayDriver,
		"visitor_storage", cfg.VisitorStorage,
		"products", len(cat.Products()),
	)

	// Hooks run in order; the logger is flushed last.
	runOpts = append(runOpts, storefront.ShutdownHook(flush))
	return storefront.New(appOpts...).Run(cfg.Addr, runOpts...)
}

// openCatalog loads CATALOG_FILE when set, or the embedded catalog.
func openCatalog(cfg Config, htmlCache cache.Cache[string]) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		cat, err := catalog.Default(catalog.WithHTMLCache(htmlCache))
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		return cat, nil
	}

	dir, name := filepath.Split(cfg.CatalogFile)
	if dir == "" {
		dir = "."
	}
	cat, err := catalog.Load(os.DirFS(dir), name, catalog.WithHTMLCache(htmlCache))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", cfg.CatalogFile, err)
	}
	return cat, nil
}

func closer(c interface{ Close() error }) func(context.Context) error {
	return func(context.Context) error { return c.Close() }
}
