// Package relay submits purchase requests, contact messages and newsletter
// signups to the shop owner through a transactional email relay.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors for relay submissions.
var (
	ErrEmptyCart      = errors.New("relay: no purchase requests to submit")
	ErrDeliveryFailed = errors.New("relay: delivery failed")
	ErrRejected       = errors.New("relay: request rejected")
)

// Kind identifies the mail a message produces.
type Kind string

const (
	KindSingle     Kind = "purchase"
	KindBulk       Kind = "purchase_bulk"
	KindContact    Kind = "contact"
	KindNewsletter Kind = "newsletter"
)

// Message is one relay call: a template reference and its flat parameters.
type Message struct {
	ID         string
	Kind       Kind
	ServiceID  string
	TemplateID string
	Params     map[string]string
}

// LogValue keeps visitor details out of logs.
func (m Message) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", m.ID),
		slog.String("kind", string(m.Kind)),
		slog.String("service_id", m.ServiceID),
		slog.String("template_id", m.TemplateID),
	)
}

// Relay delivers a message.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// Func adapts a function to Relay.
type Func func(ctx context.Context, msg Message) error

func (f Func) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// LogRelay only logs messages. Used in development and when no relay is configured.
type LogRelay struct {
	logger *slog.Logger
}

// NewLogRelay creates a LogRelay.
func NewLogRelay(logger *slog.Logger) *LogRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRelay{logger: logger}
}

func (r *LogRelay) Send(ctx context.Context, msg Message) error {
	r.logger.InfoContext(ctx, "relay message",
		slog.Any("message", msg),
		slog.Int("params", len(msg.Params)),
	)
	return nil
}

// Driver names accepted by New.
const (
	DriverEmailJS = "emailjs"
	DriverMail    = "mail"
	DriverLog     = "log"
)

// ErrUnknownDriver is returned by New for an unsupported driver name.
var ErrUnknownDriver = errors.New("relay: unknown driver")

// Drivers holds the constructors New chooses from.
type Drivers struct {
	EmailJS func() (Relay, error)
	Mail    func() (Relay, error)
	Logger  *slog.Logger

	// FallbackToLog replaces a driver that fails to initialize with a
	// LogRelay instead of returning the error. Unknown drivers still fail.
	FallbackToLog bool
}

// New builds the relay for driver.
func New(driver string, d Drivers) (Relay, error) {
	var build func() (Relay, error)
	switch driver {
	case DriverEmailJS:
		build = d.EmailJS
	case DriverMail:
		build = d.Mail
	case DriverLog, "":
		return NewLogRelay(d.Logger), nil
	}
	if build == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	r, err := build()
	if err != nil && d.FallbackToLog {
		lr := NewLogRelay(d.Logger)
		lr.logger.Error("relay driver failed to initialize, messages will only be logged",
			slog.String("driver", driver), slog.Any("error", err))
		return lr, nil
	}
	return r, err
}
