package http

import "github.com/labstack/echo/v4"

type Router struct {
	Health    *Handler
	Refinance *RefinanceHandler
	Loans     *LoanHandler
	Accounts  *AccountHandler
}

// Register mounts every route on e. mutating is applied to POST routes only.
func (r Router) Register(e *echo.Echo, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)

	e.POST("/refinance", r.Refinance.Refinance, mutating...)
	e.GET("/loans/:loan_id", r.Loans.GetLoan)

	cust := e.Group("/customers/:customer_id")
	cust.GET("/loans", r.Loans.ListLoans)
	cust.GET("/loans/to-cancel", r.Loans.ListToCancel)
	cust.POST("/loans", r.Loans.Originate, mutating...)
	cust.GET("/offers", r.Loans.ListOffers)
	cust.GET("/account", r.Accounts.GetAccount)
	cust.GET("/transactions", r.Accounts.ListTransactions)
	cust.GET("/refinance-operations", r.Refinance.ListOperations)
	cust.POST("/reset", r.Refinance.Reset, mutating...)
}
