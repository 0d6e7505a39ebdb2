package agreement

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Agreement) error
	GetByLoanID(ctx context.Context, loanNumericID uint64) (*Agreement, error)
	GetByAgreementID(ctx context.Context, agreementID string) (*Agreement, error)
	// SignAsBorrower sets the borrower signature fields only if they are
	// still unset (conditional write). Returns false when a signature was
	// already present, which callers treat as a lost race.
	SignAsBorrower(ctx context.Context, loanNumericID uint64, name string, at time.Time) (bool, error)
	// RecordCancellation appends cancellation metadata. Signatures are
	// never touched.
	RecordCancellation(ctx context.Context, loanNumericID uint64, by string, at time.Time, note string) error
}
