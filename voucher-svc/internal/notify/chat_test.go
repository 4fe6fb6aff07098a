package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-voucher/voucher-svc/internal/domain"
	"wedding-voucher/voucher-svc/internal/notify"
	"wedding-voucher/voucher-svc/internal/service"
)

var testImage = &service.RenderedImage{PNG: []byte{0x89, 'P', 'N', 'G'}}

func testGuest() *domain.Guest {
	return &domain.Guest{ID: 42, Name: "Ani", Email: "a@b.com", Phone: "+6281234567890"}
}

func TestChatID(t *testing.T) {
	tests := []struct {
		phone    string
		expected string
	}{
		{phone: "+6281234567890", expected: "6281234567890@c.us"},
		{phone: "6281234567890", expected: "6281234567890@c.us"},
		{phone: "++62812", expected: "+62812@c.us"},
		{phone: " +62812 ", expected: "62812@c.us"},
	}

	for _, testCase := range tests {
		t.Run(testCase.phone, func(t *testing.T) {
			assert.Equal(t, testCase.expected, notify.ChatID(testCase.phone))
		})
	}
}

func TestWahaChatSender_SendVoucher(t *testing.T) {
	tests := []struct {
		name          string
		apiKey        string
		status        int
		expectedSent  bool
		expectedError bool
	}{
		{name: "created_with_api_key", apiKey: "secret", status: http.StatusCreated, expectedSent: true},
		{name: "ok_without_api_key", status: http.StatusOK, expectedSent: true},
		{name: "gateway_error", status: http.StatusInternalServerError, expectedError: true},
		{name: "unauthorized", apiKey: "wrong", status: http.StatusUnauthorized, expectedError: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var (
				body    map[string]string
				headers http.Header
				path    string
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				headers = r.Header.Clone()
				_ = json.NewDecoder(r.Body).Decode(&body)
				w.WriteHeader(testCase.status)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			sender := notify.NewWahaChatSender(notify.ChatConfig{
				BaseURL: server.URL + "/",
				Session: "wedding",
				APIKey:  testCase.apiKey,
			}, server.Client(), zerolog.Nop())

			result := sender.SendVoucher(context.Background(), testGuest(), testImage)

			assert.Equal(t, testCase.expectedSent, result.Delivered)
			assert.Equal(t, testCase.status, result.StatusCode)
			assert.Equal(t, "6281234567890@c.us", result.ChatID)
			if testCase.expectedError {
				assert.Error(t, result.Err)
			} else {
				assert.NoError(t, result.Err)
			}

			assert.Equal(t, "/api/sessions/wedding/messages", path)
			assert.Equal(t, "application/json", headers.Get("Content-Type"))
			assert.Equal(t, "application/json", headers.Get("Accept"))
			assert.Equal(t, testCase.apiKey, headers.Get("X-Api-Key"))
			if testCase.apiKey == "" {
				assert.NotContains(t, headers, "X-Api-Key")
			}

			assert.Equal(t, "6281234567890@c.us", body["chatId"])
			assert.Equal(t, testImage.DataURI(), body["media"])
			assert.Equal(t, notify.VoucherCaption("Ani"), body["caption"])
			assert.Equal(t, "image/png", body["mimetype"])
			assert.Equal(t, "voucher-qr.png", body["filename"])
		})
	}
}

func TestWahaChatSender_MissingBaseURL(t *testing.T) {
	sender := notify.NewWahaChatSender(notify.ChatConfig{Session: "default"}, nil, zerolog.Nop())

	result := sender.SendVoucher(context.Background(), testGuest(), testImage)
	assert.False(t, result.Delivered)
	assert.ErrorIs(t, result.Err, notify.ErrChatNotConfigured)
}

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestWahaChatSender_TransportError(t *testing.T) {
	sender := notify.NewWahaChatSender(notify.ChatConfig{BaseURL: "http://waha.invalid", Session: "default"}, failingClient{}, zerolog.Nop())

	result := sender.SendVoucher(context.Background(), testGuest(), testImage)
	assert.False(t, result.Delivered)
	assert.Zero(t, result.StatusCode)
	assert.Error(t, result.Err)
}

func TestWahaChatSender_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	sender := notify.NewWahaChatSender(notify.ChatConfig{
		BaseURL: server.URL,
		Session: "default",
		Timeout: 50 * time.Millisecond,
	}, server.Client(), zerolog.Nop())

	result := sender.SendVoucher(context.Background(), testGuest(), testImage)
	require.Error(t, result.Err)
	assert.False(t, result.Delivered)
}

func TestVoucherCaption(t *testing.T) {
	assert.Equal(t,
		"Halo Ani, terima kasih telah RSVP. Ini adalah voucher diskon 10% Anda. Tunjukkan QR Code ini kepada tim merchandise.",
		notify.VoucherCaption("Ani"),
	)
}
