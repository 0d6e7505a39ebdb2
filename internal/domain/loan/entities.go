package loan

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type TermUnit string

const (
	TermDays   TermUnit = "days"
	TermWeeks  TermUnit = "weeks"
	TermMonths TermUnit = "months"
	// TermDate: the offer names a target due date instead of a count;
	// TermValue is zero for these loans.
	TermDate TermUnit = "date"
)

type Cadence string

const (
	CadenceNone     Cadence = "none"
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// BalanceEpsilon absorbs float rounding when deciding whether a balance is
// closed or a recorded amount is within the remaining range.
const BalanceEpsilon = 0.01

func ValidTermUnit(u TermUnit) bool {
	switch u {
	case TermDays, TermWeeks, TermMonths, TermDate:
		return true
	}
	return false
}

func ValidCadence(c Cadence) bool {
	switch c {
	case CadenceNone, CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return true
	}
	return false
}

type Loan struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	LenderID           string         `gorm:"size:32;index:idx_loans_lender" json:"lender_id"`
	BorrowerID         string         `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	Principal          float64        `gorm:"type:decimal(18,2)" json:"principal"`
	RatePercent        float64        `gorm:"type:decimal(6,4)" json:"rate_percent"`
	TermValue          int            `json:"term_value"`
	TermUnit           TermUnit       `gorm:"size:16" json:"term_unit"`
	Cadence            Cadence        `gorm:"size:16" json:"cadence"`
	TotalAmount        float64        `gorm:"type:decimal(18,2)" json:"total_amount"`
	InstallmentAmount  float64        `gorm:"type:decimal(18,2)" json:"installment_amount"`
	AmountPaid         float64        `gorm:"type:decimal(18,2)" json:"amount_paid"`
	Status             Status         `gorm:"type:enum('pending','active','declined','cancelled','completed');default:'pending'" json:"status"`
	Purpose            string         `gorm:"type:text" json:"purpose"`
	DueDate            time.Time      `json:"due_date"`
	NextPaymentDueDate *time.Time     `json:"next_payment_due_date"`
	StatusUpdatedAt    time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy          string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// IsParty reports whether userID is the lender or the borrower.
func (l *Loan) IsParty(userID string) bool {
	return userID == l.LenderID || userID == l.BorrowerID
}

// Counterparty returns the other party of the loan relative to userID.
// ok is false when userID is not a party at all.
func (l *Loan) Counterparty(userID string) (string, bool) {
	switch userID {
	case l.LenderID:
		return l.BorrowerID, true
	case l.BorrowerID:
		return l.LenderID, true
	}
	return "", false
}

// Remaining is the outstanding balance, never negative.
func (l *Loan) Remaining() float64 {
	return math.Max(l.TotalAmount-l.AmountPaid, 0)
}
