package relay

import (
	"context"
	"embed"
	"io/fs"

	"github.com/dmitrymomot/storefront/pkg/mailer"
)

//go:embed templates
var templatesFS embed.FS

// Templates returns the markdown mail templates used by MailRelay,
// one per Kind, plus layouts/base.html.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// MailRelay renders messages into emails addressed to the to_email parameter
// and sends them through a mailer.
type MailRelay struct {
	mailer *mailer.Mailer
}

// NewMailRelay creates a MailRelay.
func NewMailRelay(m *mailer.Mailer) *MailRelay {
	return &MailRelay{mailer: m}
}

// Send implements Relay.
func (r *MailRelay) Send(ctx context.Context, msg Message) error {
	tags := map[string]string{"kind": string(msg.Kind)}
	if msg.TemplateID != "" {
		tags["template_id"] = msg.TemplateID
	}

	return r.mailer.Send(ctx, mailer.SendParams{
		To:       msg.Params["to_email"],
		ReplyTo:  msg.Params["from_email"],
		Template: string(msg.Kind) + ".md",
		Data:     msg.Params,
		Tags:     tags,
	})
}

var _ Relay = (*MailRelay)(nil)
