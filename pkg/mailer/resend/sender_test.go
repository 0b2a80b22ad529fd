package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/mailer"
	"github.com/dmitrymomot/storefront/pkg/mailer/resend"
)

func TestSender_Send(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	t.Cleanup(srv.Close)

	s, err := resend.New(resend.Config{
		APIKey:      "re_test",
		SenderEmail: "shop@example.com",
		SenderName:  "Shop",
		BaseURL:     srv.URL + "/",
	})
	require.NoError(t, err)

	err = s.Send(context.Background(), &mailer.Email{
		To:      []string{"owner@example.com"},
		ReplyTo: "buyer@example.com",
		Subject: "Purchase request",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		Tags:    map[string]string{"kind": "single"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Shop <shop@example.com>", got["from"])
	assert.Equal(t, "Purchase request", got["subject"])
	assert.Equal(t, []any{"owner@example.com"}, got["to"])
}

func TestSender_SendError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"bad"}`))
	}))
	t.Cleanup(srv.Close)

	s, err := resend.New(resend.Config{APIKey: "re_test", SenderEmail: "shop@example.com", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	err = s.Send(context.Background(), &mailer.Email{To: []string{"a@b.co"}, Subject: "s", HTML: "x"})
	assert.Error(t, err)
}
