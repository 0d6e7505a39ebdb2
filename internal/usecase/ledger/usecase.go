// Package ledger is the read-side projection over loans and their payment
// history. It only reads, and it degrades instead of failing: a counterparty
// whose profile cannot be resolved shows up as a placeholder, never as an
// error for the whole view.
package ledger

import (
	"context"
	"math"
	"time"

	domainAgreement "peerlend-backend/internal/domain/agreement"
	domainLoan "peerlend-backend/internal/domain/loan"
	domainPayment "peerlend-backend/internal/domain/payment"
	"peerlend-backend/internal/domain/profile"
)

type Usecase struct {
	loans      domainLoan.Repository
	agreements domainAgreement.Repository
	payments   domainPayment.Repository
	profiles   profile.Directory
}

func NewUsecase(loans domainLoan.Repository, agreements domainAgreement.Repository, payments domainPayment.Repository, profiles profile.Directory) *Usecase {
	return &Usecase{loans: loans, agreements: agreements, payments: payments, profiles: profiles}
}

// Dashboard partitions a user's loans into lent vs borrowed and computes the
// aggregate figures shown on the landing view.
func (u *Usecase) Dashboard(ctx context.Context, userID string) (*DashboardDTO, error) {
	loans, err := u.loans.ListByParty(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := &DashboardDTO{Lent: []LoanSummary{}, Borrowed: []LoanSummary{}}
	for i := range loans {
		l := &loans[i]
		s := u.summarize(ctx, l, userID, now)
		if s.Role == "lender" {
			out.Lent = append(out.Lent, s)
			if l.Status == domainLoan.StatusActive {
				out.TotalLentActive += l.Principal
			}
			continue
		}
		out.Borrowed = append(out.Borrowed, s)
		if l.Status == domainLoan.StatusActive {
			out.TotalBorrowedActive += l.Principal
			if l.NextPaymentDueDate != nil &&
				(out.NextPayment == nil || l.NextPaymentDueDate.Before(out.NextPayment.DueDate)) {
				out.NextPayment = &NextPayment{
					LoanID:  l.LoanID,
					Amount:  nextPaymentAmount(l),
					DueDate: *l.NextPaymentDueDate,
				}
			}
		}
	}
	return out, nil
}

// Statement returns the full view of one loan for one of its parties.
func (u *Usecase) Statement(ctx context.Context, loanID, userID string) (*StatementDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, domainLoan.ErrNotFound
	}
	if !l.IsParty(userID) {
		return nil, domainLoan.ErrUnauthorizedParty
	}

	now := time.Now().UTC()
	st := &StatementDTO{Loan: u.summarize(ctx, l, userID, now), Payments: []PaymentView{}}

	// Best effort: a loan without a readable agreement still renders.
	if a, err := u.agreements.GetByLoanID(ctx, l.ID); err == nil {
		st.Agreement = &AgreementView{
			AgreementID:       a.AgreementID,
			Principal:         a.Principal,
			RatePercent:       a.RatePercent,
			TermValue:         a.TermValue,
			TermUnit:          string(a.TermUnit),
			Cadence:           string(a.Cadence),
			TotalAmount:       a.TotalAmount,
			InstallmentAmount: a.InstallmentAmount,
			Purpose:           a.Purpose,
			DueDate:           a.DueDate,
			LenderName:        a.LenderName,
			LenderSignedAt:    a.LenderSignedAt,
			BorrowerName:      a.BorrowerName,
			BorrowerSignedAt:  a.BorrowerSignedAt,
			FullySigned:       a.FullySigned(),
			CancelledBy:       a.CancelledBy,
			CancelledAt:       a.CancelledAt,
			CancelNote:        a.CancelNote,
		}
	}

	ps, err := u.payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		st.Payments = append(st.Payments, PaymentView{
			PaymentID:   p.PaymentID,
			Amount:      p.Amount,
			Method:      string(p.Method),
			RecordedBy:  p.RecordedBy,
			Status:      string(p.Status),
			PaymentDate: p.PaymentDate,
			Notes:       p.Notes,
			ResolvedAt:  p.ResolvedAt,
		})
	}
	return st, nil
}

func (u *Usecase) summarize(ctx context.Context, l *domainLoan.Loan, userID string, now time.Time) LoanSummary {
	role := "borrower"
	counterpartyID := l.LenderID
	if userID == l.LenderID {
		role = "lender"
		counterpartyID = l.BorrowerID
	}

	prof, err := u.profiles.Get(ctx, counterpartyID)
	if err != nil || prof == nil {
		prof = profile.Placeholder(counterpartyID)
	}

	pending, err := u.payments.SumPendingByLoanID(ctx, l.ID)
	if err != nil {
		pending = 0
	}

	s := LoanSummary{
		LoanID:             l.LoanID,
		Role:               role,
		Counterparty:       prof.FullName,
		CounterpartyHandle: prof.Handle,
		Status:             string(l.Status),
		Principal:          l.Principal,
		TotalAmount:        l.TotalAmount,
		AmountPaid:         l.AmountPaid,
		PendingAmount:      pending,
		ProgressPercent:    progressPercent(l),
		InstallmentAmount:  l.InstallmentAmount,
		Cadence:            string(l.Cadence),
		DueDate:            l.DueDate,
		NextPaymentDueDate: l.NextPaymentDueDate,
	}
	if l.NextPaymentDueDate != nil {
		d := daysUntil(now, *l.NextPaymentDueDate)
		s.DaysUntilDue = &d
	}
	return s
}

func progressPercent(l *domainLoan.Loan) float64 {
	if l.TotalAmount <= 0 {
		return 0
	}
	return math.Round(l.AmountPaid/l.TotalAmount*10000) / 100
}

// daysUntil rounds up, so "due later today" is 0 and "due tomorrow" is 1.
// Negative means overdue by that many days.
func daysUntil(now, due time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// The last installment can be smaller than the nominal one.
func nextPaymentAmount(l *domainLoan.Loan) float64 {
	if l.Cadence == domainLoan.CadenceNone || l.InstallmentAmount <= 0 {
		return roundCents(l.Remaining())
	}
	return roundCents(math.Min(l.InstallmentAmount, l.Remaining()))
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
