package http

import (
	"context"
	"errors"
	"net/http"

	"loan-refinance/internal/adapter/middleware"
	"loan-refinance/internal/domain/account"
	"loan-refinance/internal/domain/loan"
	"loan-refinance/internal/domain/lock"
	"loan-refinance/internal/domain/offer"
	"loan-refinance/internal/domain/refinance"
	ucLoan "loan-refinance/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal error"

// statusFor maps a usecase error to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case refinance.IsBusinessError(err):
		return http.StatusUnprocessableEntity, refinance.Code(err)
	case errors.Is(err, ucLoan.ErrInvalidInput):
		return http.StatusUnprocessableEntity, "INVALID_REQUEST"
	case errors.Is(err, offer.ErrNoOffers):
		return http.StatusUnprocessableEntity, "NO_OFFERS"
	case errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound, "LOAN_NOT_FOUND"
	case errors.Is(err, account.ErrNotFound):
		return http.StatusNotFound, "ACCOUNT_NOT_FOUND"
	case errors.Is(err, loan.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_LOAN_STATE"
	case errors.Is(err, lock.ErrNotAcquired):
		return http.StatusConflict, "CONCURRENT_OPERATION"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// writeError renders err as an ErrorResponse. Unclassified errors are logged
// and replaced by a generic message. Lock contention carries Retry-After.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if errors.Is(err, lock.ErrNotAcquired) {
		c.Response().Header().Set(middleware.HeaderRetryAfter, "1")
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		if status == http.StatusInternalServerError {
			msg = internalErrorMessage
		}
	}
	return c.JSON(status, ErrorResponse{Error: msg, ErrorCode: code})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", ErrorCode: "BAD_REQUEST"})
}

func invalidFields(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:     "validation failed",
		ErrorCode: "VALIDATION_FAILED",
		Details:   ToFieldErrors(err),
	})
}
