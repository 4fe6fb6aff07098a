package domain

import "time"

type VoucherStatus string

const (
	VoucherUnused   VoucherStatus = "unused"
	VoucherRedeemed VoucherStatus = "redeemed"
)

type Guest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	Voucher   *Voucher  `json:"voucher,omitempty"`
}

type Voucher struct {
	ID          int64         `json:"id"`
	GuestID     int64         `json:"guest_id"`
	Code        string        `json:"code"`
	Status      VoucherStatus `json:"status"`
	EmailSentAt *time.Time    `json:"email_sent_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Delivered reports whether the email channel ever confirmed delivery.
func (v *Voucher) Delivered() bool {
	return v != nil && v.EmailSentAt != nil
}

type JobType string

const (
	JobIssueVoucher     JobType = "issue_voucher"
	JobRedeliverVoucher JobType = "redeliver_voucher"
)

// VoucherJob is the message carried on the voucher job topic.
type VoucherJob struct {
	Type        JobType   `json:"type"`
	GuestID     int64     `json:"guest_id"`
	Attempt     int       `json:"attempt"`
	RequestedAt time.Time `json:"requested_at"`
	// NotBefore delays a retried job; zero means run immediately.
	NotBefore time.Time `json:"not_before,omitempty"`
}
