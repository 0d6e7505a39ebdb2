package agreementmock

import (
	"context"
	"time"

	domain "peerlend-backend/internal/domain/agreement"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies agreement.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Agreement) error
	GetByLoanIDFn        func(ctx context.Context, loanNumericID uint64) (*domain.Agreement, error)
	GetByAgreementIDFn   func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	SignAsBorrowerFn     func(ctx context.Context, loanNumericID uint64, name string, at time.Time) (bool, error)
	RecordCancellationFn func(ctx context.Context, loanNumericID uint64, by string, at time.Time, note string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Agreement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanNumericID uint64) (*domain.Agreement, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAgreementID(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDFn != nil {
		return m.GetByAgreementIDFn(ctx, agreementID)
	}
	return nil, context.Canceled
}

func (m *Repo) SignAsBorrower(ctx context.Context, loanNumericID uint64, name string, at time.Time) (bool, error) {
	if m.SignAsBorrowerFn != nil {
		return m.SignAsBorrowerFn(ctx, loanNumericID, name, at)
	}
	return true, nil
}

func (m *Repo) RecordCancellation(ctx context.Context, loanNumericID uint64, by string, at time.Time, note string) error {
	if m.RecordCancellationFn != nil {
		return m.RecordCancellationFn(ctx, loanNumericID, by, at, note)
	}
	return nil
}
