package payment

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]Payment, error)
	// SumPendingByLoanID totals payments still awaiting confirmation.
	SumPendingByLoanID(ctx context.Context, loanNumericID uint64) (float64, error)
	// TransitionStatus is the atomic check-and-set at the heart of the
	// exactly-once guarantee: UPDATE ... SET status = to WHERE id = ? AND
	// status = from. Returns false (no error) when zero rows matched,
	// i.e. the payment was already resolved by a concurrent actor.
	TransitionStatus(ctx context.Context, id uint64, from, to Status, resolvedAt time.Time) (bool, error)
	// DeleteIfPending soft-deletes the payment only while it is still in
	// pending_confirmation. Returns false when it was already resolved.
	DeleteIfPending(ctx context.Context, id uint64) (bool, error)
}
