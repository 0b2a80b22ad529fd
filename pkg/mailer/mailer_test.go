package mailer_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}

var testFS = fstest.MapFS{
	"layouts/base.html": {Data: []byte(`<html><body>{{.Content}}</body></html>`)},
	"request.md": {Data: []byte(`---
Subject: Request from {{.Name}}
---
Item: **{{.Item}}**
`)},
	"plain.md":  {Data: []byte("No frontmatter for {{.Name}}")},
	"broken.md": {Data: []byte("{{.Name")},
}

func newMailer(s mailer.Sender) *mailer.Mailer {
	return mailer.New(s, mailer.NewRenderer(testFS), mailer.Config{
		Layout:          "base.html",
		FallbackSubject: "Fallback",
	})
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	t.Run("subject from metadata", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		s.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.To[0] == "shop@example.com" &&
				e.ReplyTo == "buyer@example.com" &&
				e.Subject == "Request from Ana" &&
				e.Text == "Item: **Bat**\n" &&
				len(e.HTML) > 0
		})).Return(nil)

		err := newMailer(s).Send(context.Background(), mailer.SendParams{
			To:       "shop@example.com",
			ReplyTo:  "buyer@example.com",
			Template: "request.md",
			Data:     map[string]string{"Name": "Ana", "Item": "Bat"},
		})
		require.NoError(t, err)
		s.AssertExpectations(t)
	})

	t.Run("fallback and override subject", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		s.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.Subject == "Fallback"
		})).Return(nil).Once()
		s.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.Subject == "Hi Ana"
		})).Return(nil).Once()

		m := newMailer(s)
		data := map[string]string{"Name": "Ana"}
		require.NoError(t, m.Send(context.Background(), mailer.SendParams{To: "x@y.co", Template: "plain.md", Data: data}))
		require.NoError(t, m.Send(context.Background(), mailer.SendParams{To: "x@y.co", Template: "plain.md", Data: data, Subject: "Hi {{.Name}}"}))
		s.AssertExpectations(t)
	})

	t.Run("no recipient", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		err := newMailer(s).Send(context.Background(), mailer.SendParams{Template: "request.md"})
		require.ErrorIs(t, err, mailer.ErrNoRecipient)
		s.AssertNotCalled(t, "Send")
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()
		err := newMailer(&mockSender{}).Send(context.Background(), mailer.SendParams{To: "x@y.co", Template: "nope.md"})
		require.ErrorIs(t, err, mailer.ErrRenderFailed)
		require.ErrorIs(t, err, mailer.ErrTemplateNotFound)
	})

	t.Run("broken template", func(t *testing.T) {
		t.Parallel()
		err := newMailer(&mockSender{}).Send(context.Background(), mailer.SendParams{To: "x@y.co", Template: "broken.md"})
		require.ErrorIs(t, err, mailer.ErrRenderFailed)
	})

	t.Run("sender failure", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		s.On("Send", mock.Anything, mock.Anything).Return(errors.New("boom"))
		err := newMailer(s).Send(context.Background(), mailer.SendParams{To: "x@y.co", Template: "plain.md"})
		require.ErrorIs(t, err, mailer.ErrSendFailed)
	})
}

func TestMailer_SendRaw(t *testing.T) {
	t.Parallel()

	m := newMailer(mailer.SenderFunc(func(context.Context, *mailer.Email) error { return nil }))
	ctx := context.Background()

	assert.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{}), mailer.ErrNoRecipient)
	assert.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{To: []string{"a@b.co"}}), mailer.ErrNoSubject)
	assert.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{To: []string{"a@b.co"}, Subject: "s"}), mailer.ErrNoContent)
	assert.NoError(t, m.SendRaw(ctx, &mailer.Email{To: []string{"a@b.co"}, Subject: "s", Text: "t"}))
}

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		meta    map[string]any
		body    string
		wantErr error
	}{
		{name: "no frontmatter", in: "hello", meta: map[string]any{}, body: "hello"},
		{name: "frontmatter", in: "---\nSubject: Hi\n---\nbody\n", meta: map[string]any{"Subject": "Hi"}, body: "body\n"},
		{name: "crlf", in: "---\r\nSubject: Hi\r\n---\r\nbody", meta: map[string]any{"Subject": "Hi"}, body: "body"},
		{name: "empty frontmatter", in: "---\n---\nbody", meta: map[string]any{}, body: "body"},
		{name: "unclosed", in: "---\nSubject: Hi\n", wantErr: mailer.ErrInvalidFrontmatter},
		{name: "bad yaml", in: "---\nkey: [unclosed\n---\n", wantErr: mailer.ErrInvalidFrontmatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := mailer.ParseTemplate([]byte(tt.in))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.meta, got.Metadata)
			assert.Equal(t, tt.body, got.Body)
		})
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := mailer.NewRenderer(testFS)
	res, err := r.Render("base.html", "request.md", map[string]string{"Name": "Ana", "Item": "Glove"})
	require.NoError(t, err)
	assert.Equal(t, "<html><body><p>Item: <strong>Glove</strong></p>\n</body></html>", res.HTML)
	assert.Equal(t, "Request from {{.Name}}", res.Metadata["Subject"])

	_, err = r.Render("missing.html", "request.md", nil)
	assert.ErrorIs(t, err, mailer.ErrLayoutNotFound)
}

func TestRecipient(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a@b.co", mailer.Recipient("", "a@b.co"))
	assert.Equal(t, "Ana <a@b.co>", mailer.Recipient("Ana", "a@b.co"))
}
