package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/onboarding-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender(apiURL string) Sender {
	return NewSender(&config.Config{
		WhatsAppAPIURL:       apiURL,
		WhatsAppAPIKey:       "key-123",
		WhatsAppTemplateName: "otp_template",
		WhatsAppPhonePrefix:  "+52",
	})
}

func TestSendOTP_PayloadShape(t *testing.T) {
	var got templateMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestSender(srv.URL).SendOTP(context.Background(), "5512345678", "123456", 25)
	require.NoError(t, err)

	assert.Equal(t, "key-123", got.APIKey)
	assert.Equal(t, "+525512345678", got.To)
	assert.Equal(t, "template", got.Type)
	assert.Equal(t, "otp_template", got.Template.Name)
	require.Len(t, got.Template.Components, 1)
	params := got.Template.Components[0].Parameters
	require.Len(t, params, 2)
	assert.Equal(t, "123456", params[0].Text)
	assert.Equal(t, "25", params[1].Text)
}

func TestSendOTP_KeepsInternationalNumbers(t *testing.T) {
	var got templateMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestSender(srv.URL).SendOTP(context.Background(), "+15551234567", "654321", 25)
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", got.To)
}

func TestSendOTP_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestSender(srv.URL).SendOTP(context.Background(), "5512345678", "123456", 25)
	assert.Error(t, err)
}
