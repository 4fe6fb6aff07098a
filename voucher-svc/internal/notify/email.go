package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"wedding-voucher/config"
	"wedding-voucher/voucher-svc/internal/domain"
	"wedding-voucher/voucher-svc/internal/service"
)

const VoucherEmailSubject = "Voucher Diskon 10% Anda"

var ErrNoRecipient = errors.New("guest has no email address")

var voucherEmailTemplate = template.Must(template.New("voucher").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Halo {{.Name}},</h2>
  <p>Terima kasih telah melakukan RSVP. Berikut voucher diskon 10% Anda untuk merchandise pernikahan kami.</p>
  <p style="text-align: center;"><img src="{{.Image}}" alt="Voucher QR Code" width="300" height="300"></p>
  <p>Kode voucher: <strong>{{.Code}}</strong></p>
  <p>Tunjukkan QR Code ini kepada tim merchandise.</p>
</body>
</html>
`))

type voucherEmailData struct {
	Name  string
	Code  string
	Image template.URL
}

// Mailer is the subset of *mail.Client used to send messages.
type Mailer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

func NewMailClient(cfg config.MailConfig) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return client, nil
}

type SMTPEmailSender struct {
	mailer Mailer
	cfg    config.MailConfig
	log    zerolog.Logger
}

func NewSMTPEmailSender(mailer Mailer, cfg config.MailConfig, log zerolog.Logger) *SMTPEmailSender {
	return &SMTPEmailSender{
		mailer: mailer,
		cfg:    cfg,
		log:    log.With().Str("component", "email-sender").Logger(),
	}
}

// BuildMessage assembles the voucher email with the QR image inline and attached.
func (s *SMTPEmailSender) BuildMessage(guest *domain.Guest, image *service.RenderedImage) (*mail.Msg, error) {
	if guest.Email == "" {
		return nil, ErrNoRecipient
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(guest.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(VoucherEmailSubject)

	data := voucherEmailData{Name: guest.Name, Image: template.URL(image.DataURI())}
	if guest.Voucher != nil {
		data.Code = guest.Voucher.Code
	}
	var body bytes.Buffer
	if err := voucherEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render email body: %w", err)
	}
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := msg.AttachReader(chatFilename, bytes.NewReader(image.PNG)); err != nil {
		return nil, fmt.Errorf("failed to attach qr image: %w", err)
	}
	return msg, nil
}

func (s *SMTPEmailSender) SendVoucher(ctx context.Context, guest *domain.Guest, image *service.RenderedImage) error {
	log := s.log.With().Int64("guest_id", guest.ID).Str("email", guest.Email).Logger()
	log.Info().
		Str("host", s.cfg.Host).
		Int("port", s.cfg.Port).
		Str("username", s.cfg.Username).
		Str("from", s.cfg.From).
		Msg("mail config")

	msg, err := s.BuildMessage(guest, image)
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrDelivery, err)
	}

	if err := s.mailer.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: failed to send email: %w", service.ErrDelivery, err)
	}
	log.Info().Msg("voucher email delivered to smtp server")
	return nil
}

var _ service.EmailSender = (*SMTPEmailSender)(nil)
