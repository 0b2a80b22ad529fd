package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/mailer"
	"github.com/dmitrymomot/storefront/pkg/mailer/resend"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/relay"
)

// Visitor storage backends.
const (
	StorageCookie = "cookie"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the storefront configuration, read from the environment.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	CookieSecret    string        `env:"COOKIE_SECRET"`
	VisitorStorage  string        `env:"VISITOR_STORAGE" envDefault:"cookie"`
	VisitorTTL      time.Duration `env:"VISITOR_TTL" envDefault:"720h"`
	VisitorQuota    int           `env:"VISITOR_QUOTA" envDefault:"4096"`
	RelayDriver     string        `env:"RELAY_DRIVER" envDefault:"log"`
	CatalogFile     string        `env:"CATALOG_FILE"`
	SoldPageSize    int           `env:"SOLD_PAGE_SIZE" envDefault:"9"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Logger  logger.Config
	Redis   redis.Config
	Relay   relay.Config
	EmailJS relay.EmailJSConfig
	Mailer  mailer.Config
	Resend  resend.Config
}

// loadConfig reads .env outside production, then the environment.
func loadConfig() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.CookieSecret != "" && len(c.CookieSecret) < 32 {
		return errors.New("COOKIE_SECRET must be at least 32 bytes")
	}
	switch c.VisitorStorage {
	case StorageCookie:
	case StorageMemory, StorageRedis:
		if c.CookieSecret == "" {
			return fmt.Errorf("COOKIE_SECRET is required for %s visitor storage", c.VisitorStorage)
		}
	default:
		return fmt.Errorf("unknown VISITOR_STORAGE %q", c.VisitorStorage)
	}
	if c.SoldPageSize < 1 {
		return fmt.Errorf("SOLD_PAGE_SIZE must be positive, got %d", c.SoldPageSize)
	}
	return nil
}

// Secure reports whether cookies need the Secure flag.
func (c Config) Secure() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}
