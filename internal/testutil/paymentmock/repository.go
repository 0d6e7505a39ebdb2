package paymentmock

import (
	"context"
	"time"

	domain "peerlend-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies payment.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn     func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListByLoanIDFn       func(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error)
	SumPendingByLoanIDFn func(ctx context.Context, loanNumericID uint64) (float64, error)
	TransitionStatusFn   func(ctx context.Context, id uint64, from, to domain.Status, resolvedAt time.Time) (bool, error)
	DeleteIfPendingFn    func(ctx context.Context, id uint64) (bool, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) SumPendingByLoanID(ctx context.Context, loanNumericID uint64) (float64, error) {
	if m.SumPendingByLoanIDFn != nil {
		return m.SumPendingByLoanIDFn(ctx, loanNumericID)
	}
	return 0, nil
}

func (m *Repo) TransitionStatus(ctx context.Context, id uint64, from, to domain.Status, resolvedAt time.Time) (bool, error) {
	if m.TransitionStatusFn != nil {
		return m.TransitionStatusFn(ctx, id, from, to, resolvedAt)
	}
	return true, nil
}

func (m *Repo) DeleteIfPending(ctx context.Context, id uint64) (bool, error) {
	if m.DeleteIfPendingFn != nil {
		return m.DeleteIfPendingFn(ctx, id)
	}
	return true, nil
}
