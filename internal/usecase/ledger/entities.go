package ledger

import "time"

// LoanSummary is one loan as seen from a given user's side.
type LoanSummary struct {
	LoanID             string     `json:"loan_id"`
	Role               string     `json:"role"` // "lender" or "borrower"
	Counterparty       string     `json:"counterparty"`
	CounterpartyHandle string     `json:"counterparty_handle,omitempty"`
	Status             string     `json:"status"`
	Principal          float64    `json:"principal"`
	TotalAmount        float64    `json:"total_amount"`
	AmountPaid         float64    `json:"amount_paid"`
	PendingAmount      float64    `json:"pending_amount"`
	ProgressPercent    float64    `json:"progress_percent"`
	InstallmentAmount  float64    `json:"installment_amount"`
	Cadence            string     `json:"cadence"`
	DueDate            time.Time  `json:"due_date"`
	NextPaymentDueDate *time.Time `json:"next_payment_due_date,omitempty"`
	// DaysUntilDue is nil without a next due date; negative means overdue
	// by that many days.
	DaysUntilDue *int `json:"days_until_due,omitempty"`
}

type NextPayment struct {
	LoanID  string    `json:"loan_id"`
	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"due_date"`
}

type DashboardDTO struct {
	Lent                []LoanSummary `json:"lent"`
	Borrowed            []LoanSummary `json:"borrowed"`
	TotalLentActive     float64       `json:"total_lent_active"`
	TotalBorrowedActive float64       `json:"total_borrowed_active"`
	// NextPayment is the earliest upcoming payment across active borrowed
	// loans, nil when nothing is owed.
	NextPayment *NextPayment `json:"next_payment,omitempty"`
}

type AgreementView struct {
	AgreementID       string     `json:"agreement_id"`
	Principal         float64    `json:"principal"`
	RatePercent       float64    `json:"rate_percent"`
	TermValue         int        `json:"term_value"`
	TermUnit          string     `json:"term_unit"`
	Cadence           string     `json:"cadence"`
	TotalAmount       float64    `json:"total_amount"`
	InstallmentAmount float64    `json:"installment_amount"`
	Purpose           string     `json:"purpose,omitempty"`
	DueDate           time.Time  `json:"due_date"`
	LenderName        string     `json:"lender_name"`
	LenderSignedAt    time.Time  `json:"lender_signed_at"`
	BorrowerName      string     `json:"borrower_name,omitempty"`
	BorrowerSignedAt  *time.Time `json:"borrower_signed_at,omitempty"`
	FullySigned       bool       `json:"fully_signed"`
	CancelledBy       string     `json:"cancelled_by,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CancelNote        string     `json:"cancel_note,omitempty"`
}

type PaymentView struct {
	PaymentID   string     `json:"payment_id"`
	Amount      float64    `json:"amount"`
	Method      string     `json:"method"`
	RecordedBy  string     `json:"recorded_by"`
	Status      string     `json:"status"`
	PaymentDate time.Time  `json:"payment_date"`
	Notes       string     `json:"notes,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// StatementDTO is the full party-only view of one loan.
type StatementDTO struct {
	Loan      LoanSummary    `json:"loan"`
	Agreement *AgreementView `json:"agreement,omitempty"`
	Payments  []PaymentView  `json:"payments"`
}
