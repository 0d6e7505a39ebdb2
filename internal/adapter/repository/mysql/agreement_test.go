package mysql

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "peerlend-backend/internal/domain/agreement"
	"peerlend-backend/pkg/id"
)

type agreementSQLite struct {
	ID                uint64         `gorm:"primaryKey;column:id"`
	AgreementID       string         `gorm:"size:32;column:agreement_id"`
	LoanID            uint64         `gorm:"column:loan_id"`
	Principal         float64        `gorm:"column:principal"`
	RatePercent       float64        `gorm:"column:rate_percent"`
	TermValue         int            `gorm:"column:term_value"`
	TermUnit          string         `gorm:"column:term_unit"`
	Cadence           string         `gorm:"column:cadence"`
	TotalAmount       float64        `gorm:"column:total_amount"`
	InstallmentAmount float64        `gorm:"column:installment_amount"`
	Purpose           string         `gorm:"column:purpose"`
	DueDate           time.Time      `gorm:"column:due_date"`
	LenderName        string         `gorm:"column:lender_name"`
	LenderSignedAt    time.Time      `gorm:"column:lender_signed_at"`
	BorrowerName      string         `gorm:"column:borrower_name"`
	BorrowerSignedAt  *time.Time     `gorm:"column:borrower_signed_at"`
	CancelledBy       string         `gorm:"column:cancelled_by"`
	CancelledAt       *time.Time     `gorm:"column:cancelled_at"`
	CancelNote        string         `gorm:"column:cancel_note"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (agreementSQLite) TableName() string { return "loan_agreements" }

func openAgreementTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&agreementSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeAgreement(loanNumericID uint64) *domain.Agreement {
	return &domain.Agreement{
		AgreementID:    id.NewID32(),
		LoanID:         loanNumericID,
		Principal:      500,
		RatePercent:    5,
		TermValue:      6,
		TermUnit:       "months",
		Cadence:        "monthly",
		TotalAmount:    512.5,
		LenderName:     "John Lender",
		LenderSignedAt: time.Now().UTC(),
		DueDate:        time.Now().UTC().AddDate(0, 6, 0),
	}
}

func TestAgreementCreateAndGet(t *testing.T) {
	db := openAgreementTestDB(t)
	repo := NewAgreementRepository(db)
	ctx := context.Background()

	a := makeAgreement(7)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byLoan, err := repo.GetByLoanID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if byLoan.AgreementID != a.AgreementID || byLoan.FullySigned() {
		t.Fatalf("unexpected agreement: %+v", byLoan)
	}

	byID, err := repo.GetByAgreementID(ctx, a.AgreementID)
	if err != nil {
		t.Fatalf("GetByAgreementID: %v", err)
	}
	if byID.LoanID != 7 {
		t.Fatalf("LoanID = %d, want 7", byID.LoanID)
	}
}

func TestSignAsBorrower_AppendOnly(t *testing.T) {
	db := openAgreementTestDB(t)
	repo := NewAgreementRepository(db)
	ctx := context.Background()

	a := makeAgreement(7)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first := time.Now().UTC().Truncate(time.Second)
	ok, err := repo.SignAsBorrower(ctx, 7, "Jane Doe", first)
	if err != nil {
		t.Fatalf("SignAsBorrower: %v", err)
	}
	if !ok {
		t.Fatalf("first signature rejected")
	}

	// a second write must not overwrite the recorded signature
	ok, err = repo.SignAsBorrower(ctx, 7, "Someone Else", first.Add(time.Hour))
	if err != nil {
		t.Fatalf("SignAsBorrower repeat: %v", err)
	}
	if ok {
		t.Fatalf("signature overwritten")
	}

	got, err := repo.GetByLoanID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.BorrowerName != "Jane Doe" || got.BorrowerSignedAt == nil {
		t.Fatalf("signature fields wrong: %+v", got)
	}
	if !got.FullySigned() {
		t.Fatalf("agreement should be fully signed")
	}
}

func TestRecordCancellation(t *testing.T) {
	db := openAgreementTestDB(t)
	repo := NewAgreementRepository(db)
	ctx := context.Background()

	a := makeAgreement(7)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	by := id.NewID32()
	at := time.Now().UTC()
	if err := repo.RecordCancellation(ctx, 7, by, at, "changed my mind"); err != nil {
		t.Fatalf("RecordCancellation: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.CancelledBy != by || got.CancelledAt == nil || got.CancelNote != "changed my mind" {
		t.Fatalf("cancellation metadata wrong: %+v", got)
	}
}
