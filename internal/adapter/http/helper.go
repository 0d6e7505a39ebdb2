package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	domainLoan "peerlend-backend/internal/domain/loan"
	domainPayment "peerlend-backend/internal/domain/payment"
)

const actorHeader = "Ax-Actor-Id"

// actorID pulls the acting user's id off the request headers. Identity
// itself comes from the upstream auth layer; here it's just a hex32 check.
func actorID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(actorHeader))
	return id, reHex32.MatchString(id)
}

// writeDomainError maps domain errors to HTTP codes. Transitions attempted
// from the wrong state and lost races are 409s: the client re-fetches and
// re-renders rather than treating them as hard failures.
func writeDomainError(c echo.Context, err error) error {
	var te *domainLoan.TermsError
	switch {
	case errors.As(err, &te):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid terms",
			Details: []FieldError{{Field: te.Field, Message: te.Reason}},
		})
	case errors.Is(err, domainLoan.ErrSelfLoan),
		errors.Is(err, domainPayment.ErrAmountOutOfRange):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainLoan.ErrUnauthorizedParty):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainPayment.ErrNotFound),
		errors.Is(err, domainLoan.ErrCounterpartyNotFound),
		errors.Is(err, domainLoan.ErrProfileNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainLoan.ErrInvalidTransition),
		errors.Is(err, domainLoan.ErrSignatureMismatch),
		errors.Is(err, domainPayment.ErrAlreadyResolved),
		errors.Is(err, domainLoan.ErrConcurrencyConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
