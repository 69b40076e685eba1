package http

import (
	"net/http"

	"loan-refinance/internal/usecase/account"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AccountHandler struct {
	uc  *account.Usecase
	log *zap.Logger
}

func NewAccountHandler(uc *account.Usecase, log *zap.Logger) *AccountHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountHandler{uc: uc, log: log}
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) ListTransactions(c echo.Context) error {
	txs, err := h.uc.ListTransactions(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, txs)
}
