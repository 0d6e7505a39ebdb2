package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/usecase/ledger"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

func (h *LedgerHandler) Dashboard(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	dto, err := h.uc.Dashboard(c.Request().Context(), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
