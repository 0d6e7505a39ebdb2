package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	agreementDomain "peerlend-backend/internal/domain/agreement"
)

type AgreementRepository struct{ db *gorm.DB }

func NewAgreementRepository(db *gorm.DB) *AgreementRepository { return &AgreementRepository{db: db} }

func (r *AgreementRepository) Create(ctx context.Context, a *agreementDomain.Agreement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgreementRepository) GetByLoanID(ctx context.Context, loanNumericID uint64) (*agreementDomain.Agreement, error) {
	var out agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		First(&out)
	return &out, res.Error
}

func (r *AgreementRepository) GetByAgreementID(ctx context.Context, agreementID string) (*agreementDomain.Agreement, error) {
	var out agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		First(&out)
	return &out, res.Error
}

// SignAsBorrower: signature columns are append-only, so the write is guarded
// on borrower_signed_at still being NULL. Zero rows affected means someone
// already signed.
func (r *AgreementRepository) SignAsBorrower(ctx context.Context, loanNumericID uint64, name string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&agreementDomain.Agreement{}).
		Where("loan_id = ? AND borrower_signed_at IS NULL", loanNumericID).
		Updates(map[string]any{
			"borrower_name":      name,
			"borrower_signed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AgreementRepository) RecordCancellation(ctx context.Context, loanNumericID uint64, by string, at time.Time, note string) error {
	return r.db.WithContext(ctx).
		Model(&agreementDomain.Agreement{}).
		Where("loan_id = ?", loanNumericID).
		Updates(map[string]any{
			"cancelled_by": by,
			"cancelled_at": at,
			"cancel_note":  note,
		}).Error
}
