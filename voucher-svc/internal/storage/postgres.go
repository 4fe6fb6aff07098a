package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"wedding-voucher/voucher-svc/internal/domain"
	"wedding-voucher/voucher-svc/internal/service"
)

const (
	uniqueViolation        = "23505"
	guestVoucherConstraint = "vouchers_guest_id_key"
	voucherCodeConstraint  = "vouchers_code_key"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) GetGuestWithVoucher(ctx context.Context, guestID int64) (*domain.Guest, error) {
	var (
		guest       domain.Guest
		voucherID   sql.NullInt64
		code        sql.NullString
		status      sql.NullString
		emailSentAt sql.NullTime
		createdAt   sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT g.id, g.name, g.email, g.phone, g.created_at,
		       v.id, v.code, v.status, v.email_sent_at, v.created_at
		FROM guests g
		LEFT JOIN vouchers v ON v.guest_id = g.id
		WHERE g.id = $1
	`, guestID).Scan(
		&guest.ID, &guest.Name, &guest.Email, &guest.Phone, &guest.CreatedAt,
		&voucherID, &code, &status, &emailSentAt, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query guest %d: %w", guestID, err)
	}

	if voucherID.Valid {
		guest.Voucher = &domain.Voucher{
			ID:        voucherID.Int64,
			GuestID:   guest.ID,
			Code:      code.String,
			Status:    domain.VoucherStatus(status.String),
			CreatedAt: createdAt.Time,
		}
		if emailSentAt.Valid {
			sentAt := emailSentAt.Time
			guest.Voucher.EmailSentAt = &sentAt
		}
	}
	return &guest, nil
}

func (r *PostgresRepository) CreateVoucher(ctx context.Context, voucher *domain.Voucher) error {
	if voucher.Status == "" {
		voucher.Status = domain.VoucherUnused
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO vouchers (guest_id, code, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, voucher.GuestID, voucher.Code, string(voucher.Status)).Scan(&voucher.ID, &voucher.CreatedAt)
	if err != nil {
		return classifyInsertError(err)
	}
	return nil
}

func (r *PostgresRepository) MarkEmailSent(ctx context.Context, voucherID int64, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE vouchers SET email_sent_at = $1 WHERE id = $2
	`, at, voucherID)
	if err != nil {
		return fmt.Errorf("failed to mark voucher %d sent: %w", voucherID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark voucher %d sent: %w", voucherID, err)
	}
	if affected == 0 {
		return fmt.Errorf("failed to mark voucher %d sent: %w", voucherID, sql.ErrNoRows)
	}
	return nil
}

func classifyInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		switch pqErr.Constraint {
		case guestVoucherConstraint:
			return service.ErrGuestHasVoucher
		case voucherCodeConstraint:
			return service.ErrCodeTaken
		}
	}
	return fmt.Errorf("failed to insert voucher: %w", err)
}

var (
	_ service.GuestRepository   = (*PostgresRepository)(nil)
	_ service.VoucherRepository = (*PostgresRepository)(nil)
)
