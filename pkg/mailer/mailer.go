package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and sends them through a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes a templated email.
type SendParams struct {
	To       string
	ReplyTo  string
	Template string
	Data     any
	Subject  string // overrides the template's Subject metadata
	Tags     map[string]string
}

// Send renders params.Template and delivers it.
// Subject resolution: params.Subject, then template metadata, then the configured fallback.
// The subject is itself a template executed with params.Data.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	result, err := m.renderer.Render(m.config.Layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if s, ok := result.Metadata["Subject"].(string); ok {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}
	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:      []string{params.To},
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		Tags:    params.Tags,
	})
}

// SendRaw delivers a prepared email.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	switch {
	case len(email.To) == 0:
		return ErrNoRecipient
	case email.Subject == "":
		return ErrNoSubject
	case email.HTML == "" && email.Text == "":
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
