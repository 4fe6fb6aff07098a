package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wedding-voucher/voucher-svc/internal/domain"
)

// State is a step of the voucher issuance state machine.
type State string

const (
	StateStart         State = "START"
	StateCheckExisting State = "CHECK_EXISTING"
	StateGenerateCode  State = "GENERATE_CODE"
	StatePersist       State = "PERSIST"
	StateRender        State = "RENDER"
	StateEmail         State = "EMAIL"
	StateChat          State = "CHAT"
	StateSkipped       State = "SKIPPED"
	StateDone          State = "DONE"
	StateFailed        State = "FAILED"
)

// maxCodeAttempts bounds regeneration when a fresh code collides with an existing one.
const maxCodeAttempts = 3

var (
	ErrCodeGeneration = errors.New("voucher code generation failed")
	ErrPersistence    = errors.New("voucher persistence failed")
	ErrDelivery       = errors.New("voucher delivery failed")
)

// StepError is returned for every fatal pipeline failure.
type StepError struct {
	Step State
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("voucher pipeline failed at %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Outcome struct {
	GuestID    int64
	State      State
	FailedStep State
	Voucher    *domain.Voucher
	Image      *RenderedImage
	Chat       *ChatResult
	// Trace lists every state entered, in order.
	Trace []State
}

func (o *Outcome) enter(s State) {
	o.Trace = append(o.Trace, s)
	o.State = s
}

type Pipeline struct {
	guests        GuestRepository
	vouchers      VoucherRepository
	codes         CodeGenerator
	renderer      QRRenderer
	email         EmailSender
	chat          ChatSender
	log           zerolog.Logger
	now           func() time.Time
	renderOptions RenderOptions
}

func NewPipeline(
	guests GuestRepository,
	vouchers VoucherRepository,
	codes CodeGenerator,
	renderer QRRenderer,
	email EmailSender,
	chat ChatSender,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		guests:        guests,
		vouchers:      vouchers,
		codes:         codes,
		renderer:      renderer,
		email:         email,
		chat:          chat,
		log:           log.With().Str("component", "voucher-pipeline").Logger(),
		now:           time.Now,
		renderOptions: VoucherRenderOptions,
	}
}

// Run issues and delivers a voucher for the guest. A guest that already owns a voucher is skipped
// without any write, render or delivery.
//
// A voucher whose email step failed is still skipped on the next run, so a retried job never
// redelivers it; Redeliver is the explicit path for that case.
func (p *Pipeline) Run(ctx context.Context, guestID int64) (*Outcome, error) {
	out := &Outcome{GuestID: guestID}
	out.enter(StateStart)
	log := p.log.With().Int64("guest_id", guestID).Logger()
	log.Info().Msg("voucher issuance started")

	out.enter(StateCheckExisting)
	guest, err := p.loadGuest(ctx, guestID)
	if err != nil {
		return p.fail(out, log, StateCheckExisting, err)
	}
	log = log.With().Str("email", guest.Email).Str("name", guest.Name).Logger()

	if guest.Voucher != nil {
		out.Voucher = guest.Voucher
		out.enter(StateSkipped)
		log.Warn().Str("code", guest.Voucher.Code).Msg("guest already has a voucher, skipping")
		if !guest.Voucher.Delivered() {
			log.Warn().
				Int64("voucher_id", guest.Voucher.ID).
				Msg("existing voucher was never confirmed delivered by email, redelivery required")
		}
		return out, nil
	}

	voucher, err := p.createVoucher(ctx, out, guest, log)
	if err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			return p.fail(out, log, stepErr.Step, stepErr.Err)
		}
		return p.fail(out, log, StatePersist, err)
	}
	if voucher == nil {
		out.enter(StateSkipped)
		log.Warn().Msg("voucher was created concurrently for this guest, skipping")
		return out, nil
	}
	out.Voucher = voucher

	return p.deliver(ctx, out, guest, voucher, log)
}

// Redeliver renders and sends the guest's existing voucher again without generating a new code.
func (p *Pipeline) Redeliver(ctx context.Context, guestID int64) (*Outcome, error) {
	out := &Outcome{GuestID: guestID}
	out.enter(StateStart)
	log := p.log.With().Int64("guest_id", guestID).Bool("redelivery", true).Logger()
	log.Info().Msg("voucher redelivery started")

	out.enter(StateCheckExisting)
	guest, err := p.loadGuest(ctx, guestID)
	if err != nil {
		return p.fail(out, log, StateCheckExisting, err)
	}
	if guest.Voucher == nil {
		return p.fail(out, log, StateCheckExisting, ErrNoVoucher)
	}
	log = log.With().Str("email", guest.Email).Str("name", guest.Name).Logger()
	out.Voucher = guest.Voucher

	return p.deliver(ctx, out, guest, guest.Voucher, log)
}

func (p *Pipeline) loadGuest(ctx context.Context, guestID int64) (*domain.Guest, error) {
	guest, err := p.guests.GetGuestWithVoucher(ctx, guestID)
	if err != nil {
		if errors.Is(err, ErrGuestNotFound) {
			return nil, err
		}
		return nil, classify(ErrPersistence, fmt.Errorf("failed to load guest: %w", err))
	}
	return guest, nil
}

// createVoucher runs GENERATE_CODE and PERSIST. It returns a nil voucher when another run won the
// race for this guest.
func (p *Pipeline) createVoucher(ctx context.Context, out *Outcome, guest *domain.Guest, log zerolog.Logger) (*domain.Voucher, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		out.enter(StateGenerateCode)
		code, err := p.codes.Generate()
		if err != nil {
			return nil, &StepError{Step: StateGenerateCode, Err: classify(ErrCodeGeneration, err)}
		}
		log.Info().Str("code", code).Int("attempt", attempt).Msg("voucher code generated")

		out.enter(StatePersist)
		voucher := &domain.Voucher{
			GuestID: guest.ID,
			Code:    code,
			Status:  domain.VoucherUnused,
		}
		err = p.vouchers.CreateVoucher(ctx, voucher)
		switch {
		case err == nil:
			log.Info().Int64("voucher_id", voucher.ID).Str("code", code).Msg("voucher saved")
			return voucher, nil
		case errors.Is(err, ErrGuestHasVoucher):
			return nil, nil
		case errors.Is(err, ErrCodeTaken):
			log.Warn().Str("code", code).Msg("voucher code collision, regenerating")
		default:
			return nil, &StepError{Step: StatePersist, Err: classify(ErrPersistence, err)}
		}
	}

	return nil, &StepError{
		Step: StatePersist,
		Err:  classify(ErrPersistence, fmt.Errorf("%w after %d attempts", ErrCodeTaken, maxCodeAttempts)),
	}
}

// deliver runs RENDER, EMAIL and CHAT. Only CHAT failures are absorbed.
func (p *Pipeline) deliver(ctx context.Context, out *Outcome, guest *domain.Guest, voucher *domain.Voucher, log zerolog.Logger) (*Outcome, error) {
	guest.Voucher = voucher

	out.enter(StateRender)
	image, err := p.renderer.Render(voucher.Code, p.renderOptions)
	if err != nil {
		return p.fail(out, log, StateRender, classify(ErrRender, err))
	}
	out.Image = image
	log.Info().
		Int("png_bytes", len(image.PNG)).
		Int("data_uri_chars", len(image.DataURI())).
		Msg("voucher qr code rendered")

	out.enter(StateEmail)
	if err := p.email.SendVoucher(ctx, guest, image); err != nil {
		return p.fail(out, log, StateEmail, classify(ErrDelivery, err))
	}
	log.Info().Msg("voucher email sent")

	sentAt := p.now()
	if err := p.vouchers.MarkEmailSent(ctx, voucher.ID, sentAt); err != nil {
		log.Error().Err(err).Int64("voucher_id", voucher.ID).Msg("failed to record email delivery")
	} else {
		voucher.EmailSentAt = &sentAt
	}

	out.enter(StateChat)
	result := p.chat.SendVoucher(ctx, guest, image)
	out.Chat = &result
	if !result.Delivered {
		log.Warn().
			Err(result.Err).
			Str("chat_id", result.ChatID).
			Int("status", result.StatusCode).
			Msg("chat delivery failed, voucher issuance continues")
	}

	out.enter(StateDone)
	log.Info().Str("code", voucher.Code).Msg("voucher issuance finished")
	return out, nil
}

func (p *Pipeline) fail(out *Outcome, log zerolog.Logger, step State, err error) (*Outcome, error) {
	out.FailedStep = step
	out.enter(StateFailed)
	log.Error().Err(err).Str("step", string(step)).Msg("voucher issuance failed")
	return out, &StepError{Step: step, Err: err}
}

func classify(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
