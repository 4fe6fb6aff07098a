package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wedding-voucher/voucher-svc/internal/domain"
)

// Dispatcher queues voucher jobs for the issuance worker.
type Dispatcher struct {
	marker    DispatchMarker
	publisher JobPublisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewDispatcher(marker DispatchMarker, publisher JobPublisher, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		marker:    marker,
		publisher: publisher,
		log:       log.With().Str("component", "voucher-dispatcher").Logger(),
		now:       time.Now,
	}
}

// DispatchIssue queues an issuance job unless one was queued for the guest recently.
// It reports whether a job was published.
func (d *Dispatcher) DispatchIssue(ctx context.Context, guestID int64) (bool, error) {
	acquired, err := d.marker.Acquire(ctx, guestID)
	if err != nil {
		// the pipeline's existing-voucher check still stops duplicates
		d.log.Warn().Err(err).Int64("guest_id", guestID).Msg("dispatch marker unavailable")
		acquired = true
	}
	if !acquired {
		d.log.Info().Int64("guest_id", guestID).Msg("voucher job already queued, not dispatching again")
		return false, nil
	}

	job := domain.VoucherJob{
		Type:        domain.JobIssueVoucher,
		GuestID:     guestID,
		Attempt:     1,
		RequestedAt: d.now(),
	}
	if err := d.publisher.PublishJob(ctx, job); err != nil {
		if releaseErr := d.marker.Release(ctx, guestID); releaseErr != nil {
			d.log.Error().Err(releaseErr).Int64("guest_id", guestID).Msg("failed to release dispatch marker")
		}
		return false, fmt.Errorf("failed to enqueue voucher job: %w", err)
	}

	d.log.Info().Int64("guest_id", guestID).Msg("voucher job queued")
	return true, nil
}

func (d *Dispatcher) DispatchRedeliver(ctx context.Context, guestID int64) error {
	job := domain.VoucherJob{
		Type:        domain.JobRedeliverVoucher,
		GuestID:     guestID,
		Attempt:     1,
		RequestedAt: d.now(),
	}
	if err := d.publisher.PublishJob(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue redelivery job: %w", err)
	}
	d.log.Info().Int64("guest_id", guestID).Msg("voucher redelivery queued")
	return nil
}
