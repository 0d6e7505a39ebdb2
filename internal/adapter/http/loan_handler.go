package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domainLoan "peerlend-backend/internal/domain/loan"
	domainPayment "peerlend-backend/internal/domain/payment"
	"peerlend-backend/internal/paylink"
	"peerlend-backend/internal/usecase/ledger"
	"peerlend-backend/internal/usecase/offer"
)

type LoanHandler struct {
	offers *offer.Usecase
	views  *ledger.Usecase
}

func NewLoanHandler(offers *offer.Usecase, views *ledger.Usecase) *LoanHandler {
	return &LoanHandler{offers: offers, views: views}
}

type createOfferReq struct {
	BorrowerID  string  `json:"borrower_id"  validate:"required,hex32"`
	Principal   float64 `json:"principal"    validate:"required,gt=0,dec2"`
	RatePercent float64 `json:"rate_percent" validate:"gte=0"`
	TermValue   int     `json:"term_value"   validate:"omitempty,gt=0"`
	TermUnit    string  `json:"term_unit"    validate:"required,oneof=days weeks months date"`
	Cadence     string  `json:"cadence"      validate:"required,oneof=none weekly biweekly monthly"`
	Purpose     string  `json:"purpose"`
	// DueDate is required with the "date" term unit and ignored otherwise.
	DueDate string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateOffer: the acting user is the lender; their signature is implied by
// submitting the offer.
func (h *LoanHandler) CreateOffer(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	var due time.Time
	if req.DueDate != "" {
		due, _ = time.Parse("2006-01-02", req.DueDate)
	}
	dto, err := h.offers.CreateOffer(c.Request().Context(), offer.CreateOfferInput{
		LenderID:    actor,
		BorrowerID:  req.BorrowerID,
		Principal:   req.Principal,
		RatePercent: req.RatePercent,
		TermValue:   req.TermValue,
		TermUnit:    req.TermUnit,
		Cadence:     req.Cadence,
		Purpose:     req.Purpose,
		DueDate:     due,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type signReq struct {
	Signature string `json:"signature" validate:"required"`
}

func (h *LoanHandler) Sign(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	var req signReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.offers.Sign(c.Request().Context(), c.Param("loan_id"), actor, req.Signature)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Decline(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	dto, err := h.offers.Decline(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type cancelReq struct {
	Note string `json:"note"`
}

// Remove withdraws a pending offer or cancels an active loan, lender-only
// either way. Which of the two applies follows from the loan's status.
func (h *LoanHandler) Remove(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	var req cancelReq
	_ = c.Bind(&req) // body optional

	loanID := c.Param("loan_id")
	err := h.offers.Withdraw(c.Request().Context(), loanID, actor)
	if err == nil {
		return c.NoContent(http.StatusNoContent)
	}
	if !errors.Is(err, domainLoan.ErrInvalidTransition) {
		return writeDomainError(c, err)
	}
	dto, err := h.offers.Cancel(c.Request().Context(), loanID, actor, req.Note)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Statement(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	st, err := h.views.Statement(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// Paylink hands back an informational deep link for paying the next
// installment over an external rail. Never a source of truth.
func (h *LoanHandler) Paylink(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	method := domainPayment.Method(c.QueryParam("method"))
	if !domainPayment.ValidMethod(method) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown payment method"})
	}
	st, err := h.views.Statement(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	handle := c.QueryParam("handle")
	if handle == "" {
		handle = st.Loan.CounterpartyHandle
	}
	amount := st.Loan.InstallmentAmount
	if remaining := st.Loan.TotalAmount - st.Loan.AmountPaid; amount <= 0 || amount > remaining {
		amount = remaining
	}
	return c.JSON(http.StatusOK, map[string]string{
		"url": paylink.DeepLink(method, handle, amount),
	})
}
