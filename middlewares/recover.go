package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/storefront/internal"
)

// DefaultStackSize is the maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize int
}

// WithRecoverStackSize sets the maximum stack trace size; 0 disables traces.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size >= 0 {
			cfg.stackSize = size
		}
	}
}

// Recover turns a panic in a later handler into a *PanicError returned to the
// app's ErrorHandler, which answers 500. The panic is logged with its stack.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				pe := &PanicError{Value: r}
				if cfg.stackSize > 0 {
					stack := make([]byte, cfg.stackSize)
					pe.Stack = stack[:runtime.Stack(stack, false)]
				}
				c.LogError("panic recovered",
					"panic", r,
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"stack", string(pe.Stack),
				)
				err = pe
			}()

			return next(c)
		}
	}
}
