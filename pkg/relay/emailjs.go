package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EmailJSConfig holds EmailJS REST credentials.
type EmailJSConfig struct {
	Endpoint   string `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
}

// EmailJS sends messages through the EmailJS REST API.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

// EmailJSOption configures an EmailJS relay.
type EmailJSOption func(*EmailJS)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) EmailJSOption {
	return func(e *EmailJS) {
		if c != nil {
			e.client = c
		}
	}
}

// NewEmailJS creates an EmailJS relay.
func NewEmailJS(cfg EmailJSConfig, opts ...EmailJSOption) *EmailJS {
	e := &EmailJS{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send implements Relay. Any non-2xx response is an error wrapping ErrRejected.
func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      msg.ServiceID,
		TemplateID:     msg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: msg.Params,
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: emailjs status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

var _ Relay = (*EmailJS)(nil)
