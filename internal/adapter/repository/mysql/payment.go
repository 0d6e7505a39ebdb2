package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	paymentDomain "peerlend-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("payment_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) SumPendingByLoanID(ctx context.Context, loanNumericID uint64) (float64, error) {
	var sum *float64
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Select("SUM(amount)").
		Where("loan_id = ? AND status = ?", loanNumericID, paymentDomain.StatusPendingConfirmation).
		Scan(&sum)
	if res.Error != nil {
		return 0, res.Error
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// TransitionStatus is the conditional check-and-set the reconciliation
// engine's exactly-once guarantee rests on. The WHERE clause carries the
// expected current status, so a retry or a racing resolver matches no rows.
func (r *PaymentRepository) TransitionStatus(ctx context.Context, id uint64, from, to paymentDomain.Status, resolvedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":      to,
			"resolved_at": resolvedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentRepository) DeleteIfPending(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, paymentDomain.StatusPendingConfirmation).
		Delete(&paymentDomain.Payment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
