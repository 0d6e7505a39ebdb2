package payment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusCompleted           Status = "completed"
	StatusDenied              Status = "denied"
)

type Method string

const (
	MethodVenmo   Method = "venmo"
	MethodPayPal  Method = "paypal"
	MethodCashApp Method = "cashapp"
	MethodZelle   Method = "zelle"
	MethodCash    Method = "cash"
	MethodOther   Method = "other"
)

func ValidMethod(m Method) bool {
	switch m {
	case MethodVenmo, MethodPayPal, MethodCashApp, MethodZelle, MethodCash, MethodOther:
		return true
	}
	return false
}

var (
	ErrNotFound         = errors.New("payment not found")
	ErrAmountOutOfRange = errors.New("payment amount outside the allowed range")
	// ErrAlreadyResolved: the payment already left pending_confirmation.
	// Confirm/deny/cancel are valid exactly once.
	ErrAlreadyResolved = errors.New("payment already confirmed, denied or withdrawn")
)

// Payment is a single asserted repayment. It never affects the loan balance
// while in pending_confirmation; only the counterparty's confirmation does.
type Payment struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PaymentID string `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	// Numeric FK to loans.id.
	LoanID      uint64         `gorm:"column:loan_id;not null;index:idx_payments_loan" json:"-"`
	Amount      float64        `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	PaymentDate time.Time      `gorm:"column:payment_date" json:"payment_date"`
	Method      Method         `gorm:"column:method;size:16" json:"method"`
	RecordedBy  string         `gorm:"column:recorded_by;size:32" json:"recorded_by"`
	Status      Status         `gorm:"column:status;type:enum('pending_confirmation','completed','denied');default:'pending_confirmation'" json:"status"`
	Notes       string         `gorm:"column:notes;type:text" json:"notes"`
	ResolvedAt  *time.Time     `gorm:"column:resolved_at" json:"resolved_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Payment) TableName() string { return "payments" }
