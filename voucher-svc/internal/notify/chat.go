package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wedding-voucher/voucher-svc/internal/domain"
	"wedding-voucher/voucher-svc/internal/service"
)

const (
	chatIDSuffix     = "@c.us"
	chatFilename     = "voucher-qr.png"
	chatMimeType     = "image/png"
	maxLoggedBody    = 4 << 10
	defaultChatAfter = 30 * time.Second
)

var ErrChatNotConfigured = errors.New("chat gateway base url is not set")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type ChatConfig struct {
	BaseURL string
	Session string
	APIKey  string
	Timeout time.Duration
}

type chatMessage struct {
	ChatID   string `json:"chatId"`
	Media    string `json:"media"`
	Caption  string `json:"caption"`
	Mimetype string `json:"mimetype"`
	Filename string `json:"filename"`
}

// WahaChatSender posts voucher images to a WAHA-compatible WhatsApp HTTP gateway.
type WahaChatSender struct {
	cfg    ChatConfig
	client HTTPClient
	log    zerolog.Logger
}

func NewWahaChatSender(cfg ChatConfig, client HTTPClient, log zerolog.Logger) *WahaChatSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChatAfter
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &WahaChatSender{
		cfg:    cfg,
		client: client,
		log:    log.With().Str("component", "chat-sender").Logger(),
	}
}

// ChatID turns a phone number into a chat contact id: one leading "+" is dropped and the contact
// suffix appended.
func ChatID(phone string) string {
	return strings.TrimPrefix(strings.TrimSpace(phone), "+") + chatIDSuffix
}

func VoucherCaption(name string) string {
	return fmt.Sprintf(
		"Halo %s, terima kasih telah RSVP. Ini adalah voucher diskon 10%% Anda. Tunjukkan QR Code ini kepada tim merchandise.",
		name,
	)
}

func (s *WahaChatSender) Endpoint() string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/api/sessions/" + s.cfg.Session + "/messages"
}

func (s *WahaChatSender) SendVoucher(ctx context.Context, guest *domain.Guest, image *service.RenderedImage) service.ChatResult {
	apiKeyState := "NOT SET"
	if s.cfg.APIKey != "" {
		apiKeyState = "SET"
	}
	s.log.Info().
		Str("base_url", s.cfg.BaseURL).
		Str("session", s.cfg.Session).
		Str("api_key", apiKeyState).
		Msg("chat gateway config")

	result := service.ChatResult{ChatID: ChatID(guest.Phone)}
	if s.cfg.BaseURL == "" {
		result.Err = ErrChatNotConfigured
		s.log.Error().Err(result.Err).Msg("chat delivery skipped")
		return result
	}
	log := s.log.With().Str("chat_id", result.ChatID).Logger()

	body, err := json.Marshal(chatMessage{
		ChatID:   result.ChatID,
		Media:    image.DataURI(),
		Caption:  VoucherCaption(guest.Name),
		Mimetype: chatMimeType,
		Filename: chatFilename,
	})
	if err != nil {
		result.Err = fmt.Errorf("failed to encode chat message: %w", err)
		log.Error().Err(result.Err).Msg("chat delivery failed")
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint(), bytes.NewReader(body))
	if err != nil {
		result.Err = fmt.Errorf("failed to build chat request: %w", err)
		log.Error().Err(result.Err).Msg("chat delivery failed")
		return result
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", s.cfg.APIKey)
	}

	log.Info().Str("endpoint", req.URL.String()).Msg("sending voucher to chat gateway")
	resp, err := s.client.Do(req)
	if err != nil {
		result.Err = fmt.Errorf("chat gateway request failed: %w", err)
		log.Error().Err(result.Err).Msg("chat delivery failed")
		return result
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	result.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Err = fmt.Errorf("chat gateway returned status %d", resp.StatusCode)
		log.Error().
			Int("status", resp.StatusCode).
			Str("response", string(respBody)).
			Msg("chat delivery failed")
		return result
	}

	result.Delivered = true
	log.Info().Int("status", resp.StatusCode).Str("response", string(respBody)).Msg("voucher sent to chat")
	return result
}

var _ service.ChatSender = (*WahaChatSender)(nil)
