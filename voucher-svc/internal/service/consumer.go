package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"wedding-voucher/voucher-svc/internal/domain"
)

type JobReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Consumer runs queued voucher jobs one at a time.
type Consumer struct {
	Reader       JobReader
	Issuer       Issuer
	Publisher    JobPublisher
	MaxAttempts  int
	RetryDelay   time.Duration
	// FetchBackoff is the pause after a failed fetch before the reader is polled again.
	FetchBackoff time.Duration
	Log          zerolog.Logger
	now          func() time.Time
}

const defaultFetchBackoff = time.Second

func NewConsumer(reader JobReader, issuer Issuer, publisher JobPublisher, maxAttempts int, retryDelay time.Duration, log zerolog.Logger) *Consumer {
	return &Consumer{
		Reader:       reader,
		Issuer:       issuer,
		Publisher:    publisher,
		MaxAttempts:  maxAttempts,
		RetryDelay:   retryDelay,
		FetchBackoff: defaultFetchBackoff,
		Log:          log.With().Str("component", "voucher-consumer").Logger(),
		now:          time.Now,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info().Msg("starting voucher job consumer")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				c.Log.Info().Msg("voucher job consumer stopped")
				return
			}
			c.Log.Error().Err(err).Dur("backoff", c.FetchBackoff).Msg("error reading voucher job")
			if !c.sleep(ctx, c.FetchBackoff) {
				c.Log.Info().Msg("voucher job consumer stopped")
				return
			}
			continue
		}

		var job domain.VoucherJob
		if err := json.Unmarshal(message.Value, &job); err != nil {
			c.Log.Error().Err(err).Int64("offset", message.Offset).Msg("dropping malformed voucher job")
		} else {
			if !c.wait(ctx, job.NotBefore) {
				return
			}
			_ = c.ProcessJob(ctx, job)
		}

		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			c.Log.Error().Err(err).Int64("offset", message.Offset).Msg("failed to commit voucher job")
		}
	}
}

// ProcessJob runs one job and requeues it while attempts remain. The returned error is the job's
// own failure, after any requeue.
func (c *Consumer) ProcessJob(ctx context.Context, job domain.VoucherJob) error {
	log := c.Log.With().
		Str("type", string(job.Type)).
		Int64("guest_id", job.GuestID).
		Int("attempt", job.Attempt).
		Logger()

	var err error
	switch job.Type {
	case domain.JobIssueVoucher:
		_, err = c.Issuer.Run(ctx, job.GuestID)
	case domain.JobRedeliverVoucher:
		_, err = c.Issuer.Redeliver(ctx, job.GuestID)
	default:
		log.Warn().Msg("unknown voucher job type")
		return nil
	}
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrGuestNotFound) || errors.Is(err, ErrNoVoucher) {
		log.Error().Err(err).Msg("voucher job cannot succeed, dropping")
		return err
	}
	if job.Attempt >= c.MaxAttempts {
		log.Error().Err(err).Msg("voucher job exhausted its attempts")
		return err
	}

	retry := job
	retry.Attempt++
	// Past PERSIST the voucher exists, so only Redeliver can resend it.
	var stepErr *StepError
	if job.Type == domain.JobIssueVoucher && errors.As(err, &stepErr) &&
		(stepErr.Step == StateRender || stepErr.Step == StateEmail) {
		retry.Type = domain.JobRedeliverVoucher
	}
	retry.NotBefore = c.now().Add(time.Duration(job.Attempt) * c.RetryDelay)
	if pubErr := c.Publisher.PublishJob(ctx, retry); pubErr != nil {
		log.Error().Err(pubErr).Msg("failed to requeue voucher job")
		return err
	}
	log.Warn().Err(err).Str("retry_type", string(retry.Type)).Time("not_before", retry.NotBefore).Msg("voucher job requeued")
	return err
}

func (c *Consumer) wait(ctx context.Context, until time.Time) bool {
	if until.IsZero() {
		return true
	}
	return c.sleep(ctx, until.Sub(c.now()))
}

// sleep pauses for delay and reports false if ctx ends first.
func (c *Consumer) sleep(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
