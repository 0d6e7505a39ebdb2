package reconcile

import (
	"time"

	"peerlend-backend/internal/domain/payment"
)

type RecordPaymentInput struct {
	LoanID      string
	Amount      float64
	Method      string
	RecordedBy  string
	PaymentDate time.Time
	Notes       string
}

type PaymentDTO struct {
	PaymentID   string     `json:"payment_id"`
	LoanID      string     `json:"loan_id"`
	Amount      float64    `json:"amount"`
	Method      string     `json:"method"`
	RecordedBy  string     `json:"recorded_by"`
	Status      string     `json:"status"`
	PaymentDate time.Time  `json:"payment_date"`
	Notes       string     `json:"notes,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ConfirmResult reports the loan-side effect of a confirmation.
type ConfirmResult struct {
	Payment            PaymentDTO `json:"payment"`
	LoanStatus         string     `json:"loan_status"`
	AmountPaid         float64    `json:"amount_paid"`
	Remaining          float64    `json:"remaining"`
	NextPaymentDueDate *time.Time `json:"next_payment_due_date,omitempty"`
	LoanCompleted      bool       `json:"loan_completed"`
}

func toDTO(p *payment.Payment, loanPublicID string) PaymentDTO {
	return PaymentDTO{
		PaymentID:   p.PaymentID,
		LoanID:      loanPublicID,
		Amount:      p.Amount,
		Method:      string(p.Method),
		RecordedBy:  p.RecordedBy,
		Status:      string(p.Status),
		PaymentDate: p.PaymentDate,
		Notes:       p.Notes,
		ResolvedAt:  p.ResolvedAt,
		CreatedAt:   p.CreatedAt,
	}
}
