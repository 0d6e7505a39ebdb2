package reconcile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainLoan "peerlend-backend/internal/domain/loan"
	domainPayment "peerlend-backend/internal/domain/payment"
	"peerlend-backend/internal/domain/uow"
	"peerlend-backend/internal/testutil/agreementmock"
	"peerlend-backend/internal/testutil/loanmock"
	"peerlend-backend/internal/testutil/paymentmock"
	"peerlend-backend/internal/testutil/uowmock"
)

var (
	lenderID   = strings.Repeat("a", 32)
	borrowerID = strings.Repeat("b", 32)
	strangerID = strings.Repeat("c", 32)
)

func activeLoan() *domainLoan.Loan {
	next := time.Now().UTC().AddDate(0, 1, 0)
	return &domainLoan.Loan{
		ID:                 7,
		LoanID:             strings.Repeat("d", 32),
		LenderID:           lenderID,
		BorrowerID:         borrowerID,
		Principal:          500,
		TotalAmount:        512.5,
		AmountPaid:         0,
		Cadence:            domainLoan.CadenceMonthly,
		Status:             domainLoan.StatusActive,
		DueDate:            time.Now().UTC().AddDate(0, 6, 0),
		NextPaymentDueDate: &next,
	}
}

func pendingPayment(l *domainLoan.Loan, amount float64, recordedBy string) *domainPayment.Payment {
	return &domainPayment.Payment{
		ID:          42,
		PaymentID:   strings.Repeat("e", 32),
		LoanID:      l.ID,
		Amount:      amount,
		Method:      domainPayment.MethodVenmo,
		RecordedBy:  recordedBy,
		Status:      domainPayment.StatusPendingConfirmation,
		PaymentDate: time.Now().UTC(),
	}
}

func engineFor(l *domainLoan.Loan, loans *loanmock.Repo, payments *paymentmock.Repo) *Usecase {
	if loans.GetByIDForUpdateFn == nil {
		loans.GetByIDForUpdateFn = func(ctx context.Context, id uint64) (*domainLoan.Loan, error) {
			if l == nil || l.ID != id {
				return nil, domainLoan.ErrNotFound
			}
			return l, nil
		}
	}
	repos := uow.Repos{Loans: loans, Agreements: &agreementmock.Repo{}, Payments: payments}
	return NewUsecase(uowmock.Passthrough(repos, func(loanID string) (*domainLoan.Loan, error) {
		if l == nil || l.LoanID != loanID {
			return nil, domainLoan.ErrNotFound
		}
		return l, nil
	}))
}

// one-payment in-memory store implementing the conditional transition
func conditionalStore(p *domainPayment.Payment) *paymentmock.Repo {
	return &paymentmock.Repo{
		GetByPaymentIDFn: func(ctx context.Context, paymentID string) (*domainPayment.Payment, error) {
			if p == nil || p.PaymentID != paymentID {
				return nil, domainPayment.ErrNotFound
			}
			cp := *p
			return &cp, nil
		},
		TransitionStatusFn: func(ctx context.Context, id uint64, from, to domainPayment.Status, at time.Time) (bool, error) {
			if p.ID != id || p.Status != from {
				return false, nil
			}
			p.Status = to
			p.ResolvedAt = &at
			return true, nil
		},
		DeleteIfPendingFn: func(ctx context.Context, id uint64) (bool, error) {
			if p.ID != id || p.Status != domainPayment.StatusPendingConfirmation {
				return false, nil
			}
			p.DeletedAt.Valid = true
			return true, nil
		},
	}
}

func TestRecordPayment_Success(t *testing.T) {
	l := activeLoan()
	var created *domainPayment.Payment
	payments := &paymentmock.Repo{
		CreateFn: func(ctx context.Context, p *domainPayment.Payment) error {
			created = p
			return nil
		},
	}
	u := engineFor(l, &loanmock.Repo{}, payments)

	dto, err := u.RecordPayment(context.Background(), RecordPaymentInput{
		LoanID:     l.LoanID,
		Amount:     90,
		Method:     "venmo",
		RecordedBy: borrowerID,
		Notes:      "first installment",
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if dto.Status != string(domainPayment.StatusPendingConfirmation) {
		t.Fatalf("status = %s, want pending_confirmation", dto.Status)
	}
	if created == nil || created.LoanID != l.ID {
		t.Fatalf("payment not created against loan: %+v", created)
	}
	if l.AmountPaid != 0 {
		t.Fatalf("recording a payment must not touch amount_paid, got %v", l.AmountPaid)
	}
}

func TestRecordPayment_AmountBounds(t *testing.T) {
	l := activeLoan()
	l.AmountPaid = 500 // remaining 12.50
	u := engineFor(l, &loanmock.Repo{}, &paymentmock.Repo{})

	for _, amount := range []float64{0, -5, 12.52} {
		_, err := u.RecordPayment(context.Background(), RecordPaymentInput{
			LoanID: l.LoanID, Amount: amount, Method: "cash", RecordedBy: borrowerID,
		})
		if !errors.Is(err, domainPayment.ErrAmountOutOfRange) {
			t.Fatalf("amount %v: err = %v, want ErrAmountOutOfRange", amount, err)
		}
	}

	// within epsilon of the remaining balance is allowed
	if _, err := u.RecordPayment(context.Background(), RecordPaymentInput{
		LoanID: l.LoanID, Amount: 12.51, Method: "cash", RecordedBy: borrowerID,
	}); err != nil {
		t.Fatalf("amount within epsilon rejected: %v", err)
	}
}

func TestRecordPayment_PartyAndStatusGuards(t *testing.T) {
	l := activeLoan()
	u := engineFor(l, &loanmock.Repo{}, &paymentmock.Repo{})

	if _, err := u.RecordPayment(context.Background(), RecordPaymentInput{
		LoanID: l.LoanID, Amount: 90, Method: "venmo", RecordedBy: strangerID,
	}); !errors.Is(err, domainLoan.ErrUnauthorizedParty) {
		t.Fatalf("stranger err = %v, want ErrUnauthorizedParty", err)
	}

	if _, err := u.RecordPayment(context.Background(), RecordPaymentInput{
		LoanID: l.LoanID, Amount: 90, Method: "telepathy", RecordedBy: borrowerID,
	}); err == nil {
		t.Fatalf("unknown method accepted")
	}

	l.Status = domainLoan.StatusPending
	if _, err := u.RecordPayment(context.Background(), RecordPaymentInput{
		LoanID: l.LoanID, Amount: 90, Method: "venmo", RecordedBy: borrowerID,
	}); !errors.Is(err, domainLoan.ErrInvalidTransition) {
		t.Fatalf("pending loan err = %v, want ErrInvalidTransition", err)
	}
}

func TestConfirmPayment_AppliesBalanceOnce(t *testing.T) {
	l := activeLoan()
	p := pendingPayment(l, 90, borrowerID)
	saves := 0
	loans := &loanmock.Repo{
		SaveFn: func(ctx context.Context, sl *domainLoan.Loan) error {
			saves++
			return nil
		},
	}
	u := engineFor(l, loans, conditionalStore(p))

	res, err := u.ConfirmPayment(context.Background(), p.PaymentID, lenderID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if res.AmountPaid != 90 {
		t.Fatalf("AmountPaid = %v, want 90", res.AmountPaid)
	}
	if res.LoanStatus != string(domainLoan.StatusActive) {
		t.Fatalf("loan status = %s, want active", res.LoanStatus)
	}
	if res.NextPaymentDueDate == nil {
		t.Fatalf("next due date not advanced")
	}
	wantDue := time.Now().UTC().AddDate(0, 1, 0)
	if diff := res.NextPaymentDueDate.Sub(wantDue); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("next due = %v, want about one month from confirmation", res.NextPaymentDueDate)
	}

	// simulated duplicate retry: must not double-credit
	if _, err := u.ConfirmPayment(context.Background(), p.PaymentID, lenderID); !errors.Is(err, domainPayment.ErrAlreadyResolved) {
		t.Fatalf("second confirm err = %v, want ErrAlreadyResolved", err)
	}
	if l.AmountPaid != 90 {
		t.Fatalf("amount_paid after retry = %v, want 90 exactly once", l.AmountPaid)
	}
	if saves != 1 {
		t.Fatalf("loan saved %d times, want 1", saves)
	}
}

func TestConfirmPayment_RecorderCannotConfirm(t *testing.T) {
	l := activeLoan()
	p := pendingPayment(l, 90, borrowerID)
	u := engineFor(l, &loanmock.Repo{}, conditionalStore(p))

	if _, err := u.ConfirmPayment(context.Background(), p.PaymentID, borrowerID); !errors.Is(err, domainLoan.ErrUnauthorizedParty) {
		t.Fatalf("err = %v, want ErrUnauthorizedParty", err)
	}
	if _, err := u.ConfirmPayment(context.Background(), p.PaymentID, strangerID); !errors.Is(err, domainLoan.ErrUnauthorizedParty) {
		t.Fatalf("stranger err = %v, want ErrUnauthorizedParty", err)
	}
	if l.AmountPaid != 0 {
		t.Fatalf("balance moved on unauthorized confirm: %v", l.AmountPaid)
	}
}

func TestConfirmPayment_FinalPaymentCompletesLoan(t *testing.T) {
	l := activeLoan()
	l.TotalAmount = 500
	l.AmountPaid = 410
	p := pendingPayment(l, 90, borrowerID)
	u := engineFor(l, &loanmock.Repo{}, conditionalStore(p))

	res, err := u.ConfirmPayment(context.Background(), p.PaymentID, lenderID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if !res.LoanCompleted || res.LoanStatus != string(domainLoan.StatusCompleted) {
		t.Fatalf("loan not completed: %+v", res)
	}
	if res.AmountPaid != 500 {
		t.Fatalf("AmountPaid = %v, want 500", res.AmountPaid)
	}
	if res.NextPaymentDueDate != nil {
		t.Fatalf("completed loan keeps next due date")
	}
}

func TestConfirmPayment_WithinEpsilonCompletes(t *testing.T) {
	l := activeLoan()
	l.TotalAmount = 500
	l.AmountPaid = 410
	p := pendingPayment(l, 89.995, borrowerID)
	u := engineFor(l, &loanmock.Repo{}, conditionalStore(p))

	res, err := u.ConfirmPayment(context.Background(), p.PaymentID, lenderID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if !res.LoanCompleted {
		t.Fatalf("payment within epsilon of total did not complete the loan")
	}
	if l.AmountPaid > l.TotalAmount {
		t.Fatalf("amount_paid %v exceeds total %v", l.AmountPaid, l.TotalAmount)
	}
}

func TestConfirmPayment_CancelledLoanRejected(t *testing.T) {
	l := activeLoan()
	p := pendingPayment(l, 90, borrowerID)
	l.Status = domainLoan.StatusCancelled
	u := engineFor(l, &loanmock.Repo{}, conditionalStore(p))

	if _, err := u.ConfirmPayment(context.Background(), p.PaymentID, lenderID); !errors.Is(err, domainLoan.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if p.Status != domainPayment.StatusPendingConfirmation {
		t.Fatalf("payment resolved on a cancelled loan")
	}
}

func TestDenyPayment_NoBalanceEffect(t *testing.T) {
	l := activeLoan()
	p := pendingPayment(l, 90, borrowerID)
	loans := &loanmock.Repo{
		SaveFn: func(ctx context.Context, sl *domainLoan.Loan) error {
			t.Fatalf("deny must not write the loan")
			return nil
		},
	}
	u := engineFor(l, loans, conditionalStore(p))

	dto, err := u.DenyPayment(context.Background(), p.PaymentID, lenderID)
	if err != nil {
		t.Fatalf("DenyPayment: %v", err)
	}
	if dto.Status != string(domainPayment.StatusDenied) {
		t.Fatalf("status = %s, want denied", dto.Status)
	}
	if l.AmountPaid != 0 {
		t.Fatalf("deny moved the balance: %v", l.AmountPaid)
	}

	// confirm racing after deny loses
	if _, err := u.ConfirmPayment(context.Background(), p.PaymentID, lenderID); !errors.Is(err, domainPayment.ErrAlreadyResolved) {
		t.Fatalf("confirm after deny err = %v, want ErrAlreadyResolved", err)
	}
}

func TestDenyPayment_RecorderCannotDeny(t *testing.T) {
	l := activeLoan()
	p := pendingPayment(l, 90, borrowerID)
	u := engineFor(l, &loanmock.Repo{}, conditionalStore(p))

	if _, err := u.DenyPayment(context.Background(), p.PaymentID, borrowerID); !errors.Is(err, domainLoan.ErrUnauthorizedParty) {
		t.Fatalf("err = %v, want ErrUnauthorizedParty", err)
	}
}

func TestCancelPendingPayment(t *testing.T) {
	l := activeLoan()
	p := pendingPayment(l, 90, borrowerID)
	u := engineFor(l, &loanmock.Repo{}, conditionalStore(p))

	// only the recorder may withdraw it
	if err := u.CancelPendingPayment(context.Background(), p.PaymentID, lenderID); !errors.Is(err, domainLoan.ErrUnauthorizedParty) {
		t.Fatalf("counterparty cancel err = %v, want ErrUnauthorizedParty", err)
	}
	if err := u.CancelPendingPayment(context.Background(), p.PaymentID, borrowerID); err != nil {
		t.Fatalf("CancelPendingPayment: %v", err)
	}
}

func TestCancelPendingPayment_AfterResolve(t *testing.T) {
	l := activeLoan()
	p := pendingPayment(l, 90, borrowerID)
	u := engineFor(l, &loanmock.Repo{}, conditionalStore(p))

	if _, err := u.ConfirmPayment(context.Background(), p.PaymentID, lenderID); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if err := u.CancelPendingPayment(context.Background(), p.PaymentID, borrowerID); !errors.Is(err, domainPayment.ErrAlreadyResolved) {
		t.Fatalf("err = %v, want ErrAlreadyResolved", err)
	}
}
