// Package reconcile applies two-party-confirmed payments to loan balances.
// Neither side is a trusted source of truth about money that moved over an
// external rail, so a payment only counts once the party who did NOT record
// it confirms — and it must count exactly once no matter how many times the
// confirmation is retried.
package reconcile

import (
	"context"
	"math"
	"time"

	"peerlend-backend/internal/amortize"
	domainLoan "peerlend-backend/internal/domain/loan"
	domainPayment "peerlend-backend/internal/domain/payment"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

// RecordPayment asserts that a transfer happened. It creates the payment in
// pending_confirmation and leaves the loan balance untouched.
func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentDTO, error) {
	if !domainPayment.ValidMethod(domainPayment.Method(in.Method)) {
		return nil, &domainLoan.TermsError{Field: "method", Reason: "is not a recognized payment method"}
	}
	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if !l.IsParty(in.RecordedBy) {
			return domainLoan.ErrUnauthorizedParty
		}
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrInvalidTransition
		}
		if in.Amount <= 0 || in.Amount > l.Remaining()+domainLoan.BalanceEpsilon {
			return domainPayment.ErrAmountOutOfRange
		}

		when := in.PaymentDate
		if when.IsZero() {
			when = time.Now().UTC()
		}
		p := &domainPayment.Payment{
			PaymentID:   id.NewID32(),
			LoanID:      l.ID,
			Amount:      in.Amount,
			PaymentDate: when,
			Method:      domainPayment.Method(in.Method),
			RecordedBy:  in.RecordedBy,
			Status:      domainPayment.StatusPendingConfirmation,
			Notes:       in.Notes,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		d := toDTO(p, l.LoanID)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ConfirmPayment is the only event that may increment a loan's balance.
// The loan row is locked first, then the payment's pending→completed
// transition is a conditional update keyed on its current status: a retry or
// a racing deny matches zero rows and credits nothing.
func (u *Usecase) ConfirmPayment(ctx context.Context, paymentID, actorID string) (*ConfirmResult, error) {
	var res *ConfirmResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return domainPayment.ErrNotFound
		}
		l, err := r.Loans.GetByIDForUpdate(ctx, p.LoanID)
		if err != nil {
			return domainLoan.ErrNotFound
		}
		if err := counterpartyGuard(l, p, actorID); err != nil {
			return err
		}
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrInvalidTransition
		}

		now := time.Now().UTC()
		ok, err := r.Payments.TransitionStatus(ctx, p.ID,
			domainPayment.StatusPendingConfirmation, domainPayment.StatusCompleted, now)
		if err != nil {
			return err
		}
		if !ok {
			return domainPayment.ErrAlreadyResolved
		}
		p.Status = domainPayment.StatusCompleted
		p.ResolvedAt = &now

		newPaid := l.AmountPaid + p.Amount
		completed := newPaid >= l.TotalAmount-domainLoan.BalanceEpsilon
		if completed {
			l.AmountPaid = math.Min(newPaid, l.TotalAmount)
			l.Status = domainLoan.StatusCompleted
			l.NextPaymentDueDate = nil
		} else {
			l.AmountPaid = newPaid
			next := amortize.NextDue(now, l.Cadence)
			if l.Cadence == domainLoan.CadenceNone {
				next = l.DueDate
			}
			l.NextPaymentDueDate = &next
		}
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		res = &ConfirmResult{
			Payment:            toDTO(p, l.LoanID),
			LoanStatus:         string(l.Status),
			AmountPaid:         l.AmountPaid,
			Remaining:          l.Remaining(),
			NextPaymentDueDate: l.NextPaymentDueDate,
			LoanCompleted:      completed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DenyPayment rejects an asserted payment. Terminal, no balance effect.
func (u *Usecase) DenyPayment(ctx context.Context, paymentID, actorID string) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return domainPayment.ErrNotFound
		}
		l, err := r.Loans.GetByIDForUpdate(ctx, p.LoanID)
		if err != nil {
			return domainLoan.ErrNotFound
		}
		if err := counterpartyGuard(l, p, actorID); err != nil {
			return err
		}

		now := time.Now().UTC()
		ok, err := r.Payments.TransitionStatus(ctx, p.ID,
			domainPayment.StatusPendingConfirmation, domainPayment.StatusDenied, now)
		if err != nil {
			return err
		}
		if !ok {
			return domainPayment.ErrAlreadyResolved
		}
		p.Status = domainPayment.StatusDenied
		p.ResolvedAt = &now
		d := toDTO(p, l.LoanID)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CancelPendingPayment lets the recorder withdraw their own still-pending
// payment. Conditional delete: once the counterparty resolved it, it stays.
func (u *Usecase) CancelPendingPayment(ctx context.Context, paymentID, actorID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return domainPayment.ErrNotFound
		}
		if actorID != p.RecordedBy {
			return domainLoan.ErrUnauthorizedParty
		}
		ok, err := r.Payments.DeleteIfPending(ctx, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domainPayment.ErrAlreadyResolved
		}
		return nil
	})
}

// counterpartyGuard: only the loan party that did not record the payment may
// resolve it.
func counterpartyGuard(l *domainLoan.Loan, p *domainPayment.Payment, actorID string) error {
	if !l.IsParty(actorID) || actorID == p.RecordedBy {
		return domainLoan.ErrUnauthorizedParty
	}
	return nil
}
