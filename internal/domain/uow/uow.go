package uow

import (
	"context"

	"peerlend-backend/internal/domain/agreement"
	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/payment"
)

type Repos struct {
	Loans      loan.Repository
	Agreements agreement.Repository
	Payments   payment.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one db transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. Every
	// write touching a loan's status or balance goes through here so that
	// concurrent actors on the same loan serialize.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
