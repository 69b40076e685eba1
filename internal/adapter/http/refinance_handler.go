package http

import (
	"net/http"
	"strings"

	"loan-refinance/internal/adapter/middleware"
	"loan-refinance/internal/usecase/refinance"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RefinanceHandler struct {
	uc  *refinance.Usecase
	log *zap.Logger
}

func NewRefinanceHandler(uc *refinance.Usecase, log *zap.Logger) *RefinanceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RefinanceHandler{uc: uc, log: log}
}

// Amount and list rules are business checks owned by the usecase so that they
// surface with their refinance error codes.
type refinanceReq struct {
	CustomerID      string          `json:"customer_id" validate:"required,customer_id"`
	SourceLoanIDs   []string        `json:"source_loan_ids"`
	OfferedAmount   decimal.Decimal `json:"offered_amount"`
	SelectedQuotas  int             `json:"selected_quotas"`
	AppliedRate     decimal.Decimal `json:"applied_rate"`
	ExpectedCashOut decimal.Decimal `json:"expected_cash_out"`
}

func (h *RefinanceHandler) Refinance(c echo.Context) error {
	var req refinanceReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalidFields(c, err)
	}
	// the idempotency scope must be the customer being refinanced
	if hdr := strings.TrimSpace(c.Request().Header.Get(middleware.HeaderCustomerID)); hdr != "" && hdr != req.CustomerID {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     middleware.HeaderCustomerID + " does not match customer_id",
			ErrorCode: "CUSTOMER_MISMATCH",
		})
	}
	res, err := h.uc.Execute(c.Request().Context(), refinance.ExecuteInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *RefinanceHandler) ListOperations(c echo.Context) error {
	ops, err := h.uc.ListOperations(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ops)
}

func (h *RefinanceHandler) Reset(c echo.Context) error {
	res, err := h.uc.Reset(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
