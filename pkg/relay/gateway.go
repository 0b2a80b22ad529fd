package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/cart"
	"github.com/dmitrymomot/storefront/pkg/id"
)

// TimestampLayout formats the timestamp template parameter.
const TimestampLayout = "Jan 2, 2006, 3:04:05 PM MST"

// Config controls delivery and names the relay templates.
type Config struct {
	OptimisticDelivery   bool          `env:"RELAY_OPTIMISTIC_DELIVERY" envDefault:"true"`
	Timeout              time.Duration `env:"RELAY_TIMEOUT" envDefault:"15s"`
	ServiceID            string        `env:"EMAILJS_SERVICE_ID" envDefault:"service_fmmquhx"`
	TemplateID           string        `env:"EMAILJS_TEMPLATE_ID" envDefault:"template_0r4tizi"`
	ContactTemplateID    string        `env:"EMAILJS_CONTACT_TEMPLATE_ID"`
	NewsletterTemplateID string        `env:"EMAILJS_NEWSLETTER_TEMPLATE_ID"`
	ShopEmail            string        `env:"SHOP_EMAIL" envDefault:"iskoolsports@gmail.com"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		OptimisticDelivery: true,
		Timeout:            15 * time.Second,
		ServiceID:          "service_fmmquhx",
		TemplateID:         "template_0r4tizi",
		ShopEmail:          "iskoolsports@gmail.com",
	}
}

// Item is the product a single purchase request is about.
type Item struct {
	Name          string
	Price         string
	OriginalPrice string
}

// Receipt describes an accepted submission.
type Receipt struct {
	ID    string
	Kind  Kind
	Items int
	// Pending is true when delivery continues in the background.
	Pending bool
}

// Gateway validates submissions, builds relay messages and delivers them.
type Gateway struct {
	relay  Relay
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for delivery failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock sets the clock used for the timestamp parameter.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGateway creates a Gateway delivering through r.
func NewGateway(r Relay, cfg Config, opts ...Option) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	g := &Gateway{
		relay:  r,
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SubmitSingle sends a purchase request for one product.
func (g *Gateway) SubmitSingle(ctx context.Context, item Item, c Contact) (Receipt, error) {
	if err := c.Validate(); err != nil {
		return Receipt{}, err
	}

	params := g.contactParams(c)
	params["product_name"] = item.Name
	params["product_price"] = item.Price
	params["original_price"] = item.OriginalPrice

	msg := g.message(KindSingle, g.cfg.TemplateID, params)
	pending, err := g.deliver(ctx, msg)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{ID: msg.ID, Kind: KindSingle, Items: 1, Pending: pending}, nil
}

// SubmitCart sends one purchase request listing every cart item and clears
// the cart once delivery succeeds or is handed off.
func (g *Gateway) SubmitCart(ctx context.Context, store *cart.Store, c Contact) (Receipt, error) {
	if err := c.Validate(); err != nil {
		return Receipt{}, err
	}

	items := store.Items()
	if len(items) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	params := g.contactParams(c)
	params["total_items"] = strconv.Itoa(len(items))
	params["items_list"] = ItemsList(items)

	msg := g.message(KindBulk, g.cfg.TemplateID, params)
	pending, err := g.deliver(ctx, msg)
	if err != nil {
		return Receipt{}, err
	}

	store.Clear(ctx)
	return Receipt{ID: msg.ID, Kind: KindBulk, Items: len(items), Pending: pending}, nil
}

// SubmitContact forwards a contact form message.
func (g *Gateway) SubmitContact(ctx context.Context, m ContactMessage) (Receipt, error) {
	if err := m.Validate(); err != nil {
		return Receipt{}, err
	}

	msg := g.message(KindContact, g.cfg.ContactTemplateID, map[string]string{
		"to_email":   g.cfg.ShopEmail,
		"from_name":  m.Name,
		"from_email": m.Email,
		"message":    m.Message,
		"timestamp":  g.timestamp(),
	})
	pending, err := g.deliver(ctx, msg)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{ID: msg.ID, Kind: KindContact, Pending: pending}, nil
}

// Subscribe forwards a newsletter signup.
func (g *Gateway) Subscribe(ctx context.Context, s Subscription) (Receipt, error) {
	if err := s.Validate(); err != nil {
		return Receipt{}, err
	}

	msg := g.message(KindNewsletter, g.cfg.NewsletterTemplateID, map[string]string{
		"to_email":         g.cfg.ShopEmail,
		"subscriber_email": s.Email,
		"timestamp":        g.timestamp(),
	})
	pending, err := g.deliver(ctx, msg)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{ID: msg.ID, Kind: KindNewsletter, Pending: pending}, nil
}

// Shutdown waits for background deliveries to finish or ctx to end.
// Deliveries submitted afterwards run synchronously.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("relay: waiting for deliveries: %w", ctx.Err())
	}
}

// ItemsList renders cart items as "name - price" lines.
func ItemsList(items []cart.LineItem) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.Name + " - " + it.Price
	}
	return strings.Join(lines, "\n")
}

func (g *Gateway) contactParams(c Contact) map[string]string {
	return map[string]string{
		"to_email":   g.cfg.ShopEmail,
		"from_name":  c.Name,
		"from_email": c.Email,
		"phone":      c.Phone,
		"address":    c.Address,
		"message":    c.Message,
		"timestamp":  g.timestamp(),
	}
}

func (g *Gateway) timestamp() string {
	return g.now().Format(TimestampLayout)
}

func (g *Gateway) message(kind Kind, templateID string, params map[string]string) Message {
	return Message{
		ID:         id.NewULID(),
		Kind:       kind,
		ServiceID:  g.cfg.ServiceID,
		TemplateID: templateID,
		Params:     params,
	}
}

// deliver hands msg to the relay. With optimistic delivery failures are only
// logged and, until Shutdown, the call returns at once with pending=true.
// Otherwise it waits and wraps failures in ErrDeliveryFailed.
// A message without a template id is only logged.
func (g *Gateway) deliver(ctx context.Context, msg Message) (pending bool, err error) {
	if msg.TemplateID == "" {
		g.logger.InfoContext(ctx, "relay template not configured, message logged only", slog.Any("message", msg))
		return false, nil
	}

	detached := context.WithoutCancel(ctx)

	if g.cfg.OptimisticDelivery {
		if !g.track() {
			_ = g.send(detached, msg)
			return false, nil
		}
		go func() {
			defer g.pending.Done()
			_ = g.send(detached, msg)
		}()
		return true, nil
	}

	if err := g.send(detached, msg); err != nil {
		return false, errors.Join(ErrDeliveryFailed, err)
	}
	return false, nil
}

func (g *Gateway) track() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.pending.Add(1)
	return true
}

func (g *Gateway) send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := time.Now()
	if err := g.relay.Send(ctx, msg); err != nil {
		g.logger.ErrorContext(ctx, "relay delivery failed",
			slog.Any("message", msg),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return err
	}

	g.logger.InfoContext(ctx, "relay delivery succeeded",
		slog.Any("message", msg),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}
