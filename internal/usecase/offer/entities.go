package offer

import (
	"time"

	"peerlend-backend/internal/domain/loan"
)

type CreateOfferInput struct {
	LenderID    string
	BorrowerID  string
	Principal   float64
	RatePercent float64
	TermValue   int
	TermUnit    string
	Cadence     string
	Purpose     string
	// DueDate carries the target date for a "date" term unit; ignored for
	// count-based units.
	DueDate time.Time
}

type LoanDTO struct {
	LoanID             string     `json:"loan_id"`
	LenderID           string     `json:"lender_id"`
	BorrowerID         string     `json:"borrower_id"`
	Principal          float64    `json:"principal"`
	RatePercent        float64    `json:"rate_percent"`
	TermValue          int        `json:"term_value"`
	TermUnit           string     `json:"term_unit"`
	Cadence            string     `json:"cadence"`
	TotalAmount        float64    `json:"total_amount"`
	InstallmentAmount  float64    `json:"installment_amount"`
	AmountPaid         float64    `json:"amount_paid"`
	Status             string     `json:"status"`
	Purpose            string     `json:"purpose"`
	DueDate            time.Time  `json:"due_date"`
	NextPaymentDueDate *time.Time `json:"next_payment_due_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:             l.LoanID,
		LenderID:           l.LenderID,
		BorrowerID:         l.BorrowerID,
		Principal:          l.Principal,
		RatePercent:        l.RatePercent,
		TermValue:          l.TermValue,
		TermUnit:           string(l.TermUnit),
		Cadence:            string(l.Cadence),
		TotalAmount:        l.TotalAmount,
		InstallmentAmount:  l.InstallmentAmount,
		AmountPaid:         l.AmountPaid,
		Status:             string(l.Status),
		Purpose:            l.Purpose,
		DueDate:            l.DueDate,
		NextPaymentDueDate: l.NextPaymentDueDate,
		CreatedAt:          l.CreatedAt,
	}
}
