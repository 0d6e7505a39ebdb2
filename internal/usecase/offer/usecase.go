package offer

import (
	"context"
	"strings"
	"time"

	"peerlend-backend/internal/amortize"
	domainAgreement "peerlend-backend/internal/domain/agreement"
	domainLoan "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/profile"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/pkg/id"
)

// Usecase drives a loan offer from creation through dual signature to
// activation, decline or cancellation. Every transition is guarded by the
// loan's current status inside a locked transaction.
type Usecase struct {
	uow            uow.UnitOfWork
	profiles       profile.Directory
	maxRatePercent float64
}

func NewUsecase(tx uow.UnitOfWork, profiles profile.Directory, maxRatePercent float64) *Usecase {
	return &Usecase{uow: tx, profiles: profiles, maxRatePercent: maxRatePercent}
}

func (u *Usecase) validateTerms(in CreateOfferInput, now time.Time) error {
	if in.Principal <= 0 {
		return &domainLoan.TermsError{Field: "principal", Reason: "must be greater than zero"}
	}
	if in.RatePercent < 0 || in.RatePercent > u.maxRatePercent {
		return &domainLoan.TermsError{Field: "rate_percent", Reason: "outside the allowed range"}
	}
	if !domainLoan.ValidTermUnit(domainLoan.TermUnit(in.TermUnit)) {
		return &domainLoan.TermsError{Field: "term_unit", Reason: "is not a recognized unit"}
	}
	if domainLoan.TermUnit(in.TermUnit) == domainLoan.TermDate {
		if in.DueDate.IsZero() || !in.DueDate.After(now) {
			return &domainLoan.TermsError{Field: "due_date", Reason: "must be a future date"}
		}
	} else if in.TermValue <= 0 {
		return &domainLoan.TermsError{Field: "term_value", Reason: "must be greater than zero"}
	}
	if !domainLoan.ValidCadence(domainLoan.Cadence(in.Cadence)) {
		return &domainLoan.TermsError{Field: "cadence", Reason: "is not a recognized cadence"}
	}
	return nil
}

// CreateOffer validates terms, stamps amortization outputs, and atomically
// creates the pending Loan with its lender-signed Agreement. The agreement
// copies the terms so they stay frozen even if the loan row changes later.
func (u *Usecase) CreateOffer(ctx context.Context, in CreateOfferInput) (*LoanDTO, error) {
	if in.LenderID == in.BorrowerID {
		return nil, domainLoan.ErrSelfLoan
	}
	now := time.Now().UTC()
	if err := u.validateTerms(in, now); err != nil {
		return nil, err
	}

	lenderProf, err := u.profiles.Get(ctx, in.LenderID)
	if err != nil {
		return nil, domainLoan.ErrProfileNotFound
	}
	if _, err := u.profiles.Get(ctx, in.BorrowerID); err != nil {
		return nil, domainLoan.ErrCounterpartyNotFound
	}

	var (
		terms   amortize.Result
		dueDate time.Time
	)
	if domainLoan.TermUnit(in.TermUnit) == domainLoan.TermDate {
		dueDate = in.DueDate
		terms = amortize.ComputeToDate(in.Principal, in.RatePercent, now, dueDate, domainLoan.Cadence(in.Cadence))
	} else {
		terms = amortize.Compute(amortize.Input{
			Principal:         in.Principal,
			AnnualRatePercent: in.RatePercent,
			TermValue:         in.TermValue,
			TermUnit:          domainLoan.TermUnit(in.TermUnit),
			Cadence:           domainLoan.Cadence(in.Cadence),
		})
		dueDate = amortize.DueDate(now, in.TermValue, domainLoan.TermUnit(in.TermUnit))
	}

	l := &domainLoan.Loan{
		LoanID:            id.NewID32(),
		LenderID:          in.LenderID,
		BorrowerID:        in.BorrowerID,
		Principal:         in.Principal,
		RatePercent:       in.RatePercent,
		TermValue:         in.TermValue,
		TermUnit:          domainLoan.TermUnit(in.TermUnit),
		Cadence:           domainLoan.Cadence(in.Cadence),
		TotalAmount:       terms.TotalAmount,
		InstallmentAmount: terms.InstallmentAmount,
		Status:            domainLoan.StatusPending,
		Purpose:           in.Purpose,
		DueDate:           dueDate,
		StatusUpdatedAt:   now,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		a := &domainAgreement.Agreement{
			AgreementID:       id.NewID32(),
			LoanID:            l.ID,
			Principal:         l.Principal,
			RatePercent:       l.RatePercent,
			TermValue:         l.TermValue,
			TermUnit:          l.TermUnit,
			Cadence:           l.Cadence,
			TotalAmount:       l.TotalAmount,
			InstallmentAmount: l.InstallmentAmount,
			Purpose:           l.Purpose,
			DueDate:           l.DueDate,
			LenderName:        lenderProf.FullName,
			LenderSignedAt:    now,
		}
		return r.Agreements.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Sign accepts a pending offer on behalf of the borrower. The typed
// signature must case-insensitively match the borrower's full legal name on
// file; this is an identity assertion, not cryptography. The directory is a
// remote call, so the profile is resolved before the loan row lock is taken;
// the in-transaction borrower guard makes the actor's profile the right one.
func (u *Usecase) Sign(ctx context.Context, loanID, actorID, typedSignature string) (*LoanDTO, error) {
	prof, err := u.profiles.Get(ctx, actorID)
	if err != nil {
		return nil, domainLoan.ErrProfileNotFound
	}

	var dto *LoanDTO
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		if actorID != l.BorrowerID {
			return domainLoan.ErrUnauthorizedParty
		}
		if !strings.EqualFold(strings.TrimSpace(typedSignature), strings.TrimSpace(prof.FullName)) {
			return domainLoan.ErrSignatureMismatch
		}

		now := time.Now().UTC()
		ok, err := r.Agreements.SignAsBorrower(ctx, l.ID, prof.FullName, now)
		if err != nil {
			return err
		}
		if !ok {
			return domainLoan.ErrConcurrencyConflict
		}

		l.Status = domainLoan.StatusActive
		l.StatusUpdatedAt = now
		next := nextDueAfterActivation(l, now)
		l.NextPaymentDueDate = &next
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// A cadence of "none" has a single balloon payment at the final due date.
func nextDueAfterActivation(l *domainLoan.Loan, now time.Time) time.Time {
	if l.Cadence == domainLoan.CadenceNone {
		return l.DueDate
	}
	return amortize.NextDue(now, l.Cadence)
}

// Decline refuses a pending offer. The agreement's borrower signature stays
// null; a declined offer is never fully signed.
func (u *Usecase) Decline(ctx context.Context, loanID, actorID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		if actorID != l.BorrowerID {
			return domainLoan.ErrUnauthorizedParty
		}
		l.Status = domainLoan.StatusDeclined
		l.StatusUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Withdraw removes a pending offer that was never activated. Lender only.
func (u *Usecase) Withdraw(ctx context.Context, loanID, actorID string) error {
	return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		if actorID != l.LenderID {
			return domainLoan.ErrUnauthorizedParty
		}
		now := time.Now().UTC()
		if err := r.Agreements.RecordCancellation(ctx, l.ID, actorID, now, "offer withdrawn before acceptance"); err != nil {
			return err
		}
		return r.Loans.Delete(ctx, l, actorID)
	})
}

// Cancel withdraws an active loan. Lender only. Confirmed payments are not
// undone; still-pending payments stay pending (their confirmation will then
// fail the active-status guard).
func (u *Usecase) Cancel(ctx context.Context, loanID, actorID, note string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusActive {
			return domainLoan.ErrInvalidTransition
		}
		if actorID != l.LenderID {
			return domainLoan.ErrUnauthorizedParty
		}
		now := time.Now().UTC()
		if err := r.Agreements.RecordCancellation(ctx, l.ID, actorID, now, note); err != nil {
			return err
		}
		l.Status = domainLoan.StatusCancelled
		l.StatusUpdatedAt = now
		l.NextPaymentDueDate = nil
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
