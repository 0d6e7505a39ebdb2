package loan

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("loan not found")
	// ErrInvalidTransition: the loan's current status does not permit the
	// attempted action. Surfaced loudly so the UI can decide which action
	// buttons are valid.
	ErrInvalidTransition    = errors.New("loan state does not permit this action")
	ErrSelfLoan             = errors.New("lender and borrower must be different users")
	ErrCounterpartyNotFound = errors.New("counterparty identity could not be resolved")
	ErrProfileNotFound      = errors.New("no profile on file for the acting user")
	ErrUnauthorizedParty    = errors.New("actor is not entitled to perform this action")
	ErrSignatureMismatch    = errors.New("typed signature does not match the borrower's legal name")
	// ErrConcurrencyConflict: a conditional write lost a race. Retryable.
	ErrConcurrencyConflict = errors.New("concurrent update conflict, retry")
)

// TermsError reports a single invalid field in proposed loan terms.
type TermsError struct {
	Field  string
	Reason string
}

func (e *TermsError) Error() string {
	return fmt.Sprintf("invalid terms: %s %s", e.Field, e.Reason)
}
