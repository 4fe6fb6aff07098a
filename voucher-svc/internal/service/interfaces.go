package service

import (
	"context"
	"errors"
	"time"

	"wedding-voucher/voucher-svc/internal/domain"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	// ErrGuestHasVoucher is returned by CreateVoucher when the guest already owns a voucher row.
	ErrGuestHasVoucher = errors.New("guest already has a voucher")
	// ErrCodeTaken is returned by CreateVoucher when the code collides with an existing voucher.
	ErrCodeTaken = errors.New("voucher code already taken")
	ErrNoVoucher = errors.New("guest has no voucher")
	// ErrInvalidPath is returned by ImageStore.Delete for paths outside the qr code directory.
	ErrInvalidPath = errors.New("path is outside the qr code directory")
)

type GuestRepository interface {
	// GetGuestWithVoucher loads the guest and, if one exists, its voucher.
	GetGuestWithVoucher(ctx context.Context, guestID int64) (*domain.Guest, error)
}

type VoucherRepository interface {
	CreateVoucher(ctx context.Context, voucher *domain.Voucher) error
	MarkEmailSent(ctx context.Context, voucherID int64, at time.Time) error
}

type EmailSender interface {
	SendVoucher(ctx context.Context, guest *domain.Guest, image *RenderedImage) error
}

// ChatResult carries the outcome of a best-effort chat delivery. Failures are values, never errors
// returned to the pipeline.
type ChatResult struct {
	ChatID     string
	Delivered  bool
	StatusCode int
	Err        error
}

type ChatSender interface {
	SendVoucher(ctx context.Context, guest *domain.Guest, image *RenderedImage) ChatResult
}

type JobPublisher interface {
	PublishJob(ctx context.Context, job domain.VoucherJob) error
}

type DispatchMarker interface {
	// Acquire sets the marker for guestID and reports whether it was newly set.
	Acquire(ctx context.Context, guestID int64) (bool, error)
	Release(ctx context.Context, guestID int64) error
}

// ImageStore persists rendered QR images and resolves their public URLs.
type ImageStore interface {
	SavePNG(data []byte) (string, error)
	Delete(path string) (bool, error)
	URL(path string) string
}

type Issuer interface {
	Run(ctx context.Context, guestID int64) (*Outcome, error)
	Redeliver(ctx context.Context, guestID int64) (*Outcome, error)
}

type DispatcherInterface interface {
	DispatchIssue(ctx context.Context, guestID int64) (bool, error)
	DispatchRedeliver(ctx context.Context, guestID int64) error
}

var (
	_ Issuer              = (*Pipeline)(nil)
	_ DispatcherInterface = (*Dispatcher)(nil)
)
