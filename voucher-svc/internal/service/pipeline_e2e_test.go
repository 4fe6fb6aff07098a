package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"wedding-voucher/config"
	"wedding-voucher/voucher-svc/internal/domain"
	"wedding-voucher/voucher-svc/internal/mocks"
	"wedding-voucher/voucher-svc/internal/notify"
	"wedding-voucher/voucher-svc/internal/service"
)

func TestPipeline_EndToEnd_Guest42(t *testing.T) {
	ctx := context.Background()

	var (
		mu       sync.Mutex
		posted   map[string]string
		postPath string
	)
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		postPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer gateway.Close()

	guests := mocks.NewGuestRepository(t)
	vouchers := mocks.NewVoucherRepository(t)
	mailer := mocks.NewMailer(t)

	guest := &domain.Guest{ID: 42, Name: "Ani", Email: "a@b.com", Phone: "+6281234567890"}
	guests.On("GetGuestWithVoucher", ctx, int64(42)).Return(guest, nil).Once()

	var saved *domain.Voucher
	vouchers.On("CreateVoucher", ctx, mock.MatchedBy(func(v *domain.Voucher) bool {
		return v.GuestID == 42 && v.Status == domain.VoucherUnused && voucherCodePattern.MatchString(v.Code)
	})).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Voucher)
		saved.ID = 1
	}).Return(nil).Once()
	vouchers.On("MarkEmailSent", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(nil).Once()

	mailer.On("DialAndSendWithContext", ctx, mock.MatchedBy(func(msg *mail.Msg) bool {
		rcpts, err := msg.GetRecipients()
		return err == nil && len(rcpts) == 1 && rcpts[0] == "a@b.com"
	})).Return(nil).Once()

	log := zerolog.Nop()
	pipeline := service.NewPipeline(
		guests,
		vouchers,
		service.RandomCodeGenerator{},
		service.NewQRService(),
		notify.NewSMTPEmailSender(mailer, config.MailConfig{Host: "smtp.test", Port: 587, From: "noreply@wedding.local", FromName: "Wedding"}, log),
		notify.NewWahaChatSender(notify.ChatConfig{BaseURL: gateway.URL, Session: "default"}, gateway.Client(), log),
		log,
	)

	out, err := pipeline.Run(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, service.StateDone, out.State)
	require.NotNil(t, saved)
	assert.Equal(t, int64(42), saved.GuestID)
	assert.Equal(t, domain.VoucherUnused, saved.Status)
	assert.Regexp(t, voucherCodePattern, saved.Code)
	require.NotNil(t, out.Image)
	assert.NotEmpty(t, out.Image.PNG)

	require.NotNil(t, out.Chat)
	assert.True(t, out.Chat.Delivered)
	assert.Equal(t, http.StatusCreated, out.Chat.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/api/sessions/default/messages", postPath)
	assert.Equal(t, "6281234567890@c.us", posted["chatId"])
	assert.Equal(t, "image/png", posted["mimetype"])
	assert.Equal(t, "voucher-qr.png", posted["filename"])
	assert.True(t, strings.HasPrefix(posted["media"], "data:image/png;base64,"))
	assert.Contains(t, posted["caption"], "Halo Ani")
}
