// Package resend delivers mailer emails through the Resend API.
package resend

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/storefront/pkg/mailer"
)

// Sender implements mailer.Sender.
type Sender struct {
	client *resend.Client
	from   string
}

// New creates a Resend sender. A non-empty cfg.BaseURL points the client at
// another endpoint (used by tests).
func New(cfg Config) (*Sender, error) {
	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("resend: invalid base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Sender{
		client: client,
		from:   mailer.Recipient(cfg.SenderName, cfg.SenderEmail),
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Tags:    tags(email.Tags),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func tags(m map[string]string) []resend.Tag {
	if len(m) == 0 {
		return nil
	}
	out := make([]resend.Tag, 0, len(m))
	for name, value := range m {
		out = append(out, resend.Tag{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var _ mailer.Sender = (*Sender)(nil)
