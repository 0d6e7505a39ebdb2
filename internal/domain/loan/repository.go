package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction. All balance/status writes go through this.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	ListByParty(ctx context.Context, userID string) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	// Delete soft-deletes a never-activated offer, recording who withdrew it.
	Delete(ctx context.Context, l *Loan, deletedBy string) error
}
