package http

import (
	"net/http"

	"loan-refinance/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log *zap.Logger
}

func NewLoanHandler(uc *loan.Usecase, log *zap.Logger) *LoanHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoanHandler{uc: uc, log: log}
}

type originateReq struct {
	Amount      decimal.Decimal `json:"amount" validate:"dgt0,dec2"`
	Quotas      int             `json:"quotas" validate:"gt=0,lte=360"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"dgt0"`
}

func (h *LoanHandler) Originate(c echo.Context) error {
	var req originateReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, err)
	}
	dto, err := h.uc.Originate(c.Request().Context(), loan.OriginateInput{
		CustomerID:  c.Param("customer_id"),
		Amount:      req.Amount,
		Quotas:      req.Quotas,
		MonthlyRate: req.MonthlyRate,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	loans, err := h.uc.ListByCustomer(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, loans)
}

// ListToCancel returns the loans that may be consolidated by a refinance.
func (h *LoanHandler) ListToCancel(c echo.Context) error {
	loans, err := h.uc.ListRefinanceCandidates(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) ListOffers(c echo.Context) error {
	offers, err := h.uc.ListOffers(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, offers)
}
