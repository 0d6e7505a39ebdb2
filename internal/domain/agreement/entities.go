package agreement

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"peerlend-backend/internal/domain/loan"
)

var ErrNotFound = errors.New("agreement not found")

// Agreement is the signed counterpart to a Loan. Loan terms are copied in at
// signing time and never updated afterwards, even if the loan record is
// redisplayed differently later. Signature timestamps are append-only.
type Agreement struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AgreementID string `gorm:"column:agreement_id;type:char(32);not null;uniqueIndex:ux_agreements_agreement_id"`
	// Numeric FK to loans.id, exactly one agreement per loan.
	LoanID uint64 `gorm:"column:loan_id;not null;uniqueIndex:ux_agreements_loan"`

	// Frozen terms.
	Principal         float64       `gorm:"column:principal;type:decimal(18,2)"`
	RatePercent       float64       `gorm:"column:rate_percent;type:decimal(6,4)"`
	TermValue         int           `gorm:"column:term_value"`
	TermUnit          loan.TermUnit `gorm:"column:term_unit;size:16"`
	Cadence           loan.Cadence  `gorm:"column:cadence;size:16"`
	TotalAmount       float64       `gorm:"column:total_amount;type:decimal(18,2)"`
	InstallmentAmount float64       `gorm:"column:installment_amount;type:decimal(18,2)"`
	Purpose           string        `gorm:"column:purpose;type:text"`
	DueDate           time.Time     `gorm:"column:due_date"`

	LenderName       string     `gorm:"column:lender_name;size:255"`
	LenderSignedAt   time.Time  `gorm:"column:lender_signed_at"`
	BorrowerName     string     `gorm:"column:borrower_name;size:255"`
	BorrowerSignedAt *time.Time `gorm:"column:borrower_signed_at"`

	CancelledBy string     `gorm:"column:cancelled_by;size:32"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	CancelNote  string     `gorm:"column:cancel_note;type:text"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Agreement) TableName() string { return "loan_agreements" }

// FullySigned is true iff both signature timestamps are present.
func (a *Agreement) FullySigned() bool {
	return !a.LenderSignedAt.IsZero() && a.BorrowerSignedAt != nil
}
