package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/usecase/reconcile"
)

type PaymentHandler struct{ uc *reconcile.Usecase }

func NewPaymentHandler(uc *reconcile.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	Amount      float64 `json:"amount"       validate:"required,gt=0,dec2"`
	Method      string  `json:"method"       validate:"required,oneof=venmo paypal cashapp zelle cash other"`
	PaymentDate string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       string  `json:"notes"`
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	var when time.Time
	if req.PaymentDate != "" {
		when, _ = time.Parse("2006-01-02", req.PaymentDate)
	}
	dto, err := h.uc.RecordPayment(c.Request().Context(), reconcile.RecordPaymentInput{
		LoanID:      c.Param("loan_id"),
		Amount:      req.Amount,
		Method:      req.Method,
		RecordedBy:  actor,
		PaymentDate: when,
		Notes:       req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) Confirm(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	res, err := h.uc.ConfirmPayment(c.Request().Context(), c.Param("payment_id"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) Deny(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	dto, err := h.uc.DenyPayment(c.Request().Context(), c.Param("payment_id"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) CancelPending(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	if err := h.uc.CancelPendingPayment(c.Request().Context(), c.Param("payment_id"), actor); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
