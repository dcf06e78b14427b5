package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"adaptive-lending/internal/usecase/analytics"
	"adaptive-lending/internal/usecase/lifecycle"
)

type BankHandler struct {
	lifecycle *lifecycle.Usecase
	analytics *analytics.Usecase
}

func NewBankHandler(lc *lifecycle.Usecase, an *analytics.Usecase) *BankHandler {
	return &BankHandler{lifecycle: lc, analytics: an}
}

// ListPending handles GET /banks/loans/pending.
func (h *BankHandler) ListPending(c echo.Context) error {
	out, err := h.lifecycle.ListPending(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": out, "count": len(out)})
}

// Approve handles POST /banks/:bank_id/loans/:loan_id/approve.
func (h *BankHandler) Approve(c echo.Context) error {
	dto, err := h.lifecycle.Approve(c.Request().Context(), c.Param("loan_id"), c.Param("bank_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Reject handles POST /banks/:bank_id/loans/:loan_id/reject.
func (h *BankHandler) Reject(c echo.Context) error {
	dto, err := h.lifecycle.Reject(c.Request().Context(), c.Param("loan_id"), c.Param("bank_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Activate handles POST /banks/:bank_id/loans/:loan_id/activate.
func (h *BankHandler) Activate(c echo.Context) error {
	dto, err := h.lifecycle.Activate(c.Request().Context(), c.Param("loan_id"), c.Param("bank_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// MarkDefaulted handles POST /admin/loans/:loan_id/default.
func (h *BankHandler) MarkDefaulted(c echo.Context) error {
	dto, err := h.lifecycle.MarkDefaulted(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// BankLoans handles GET /banks/:bank_id/loans.
func (h *BankHandler) BankLoans(c echo.Context) error {
	out, err := h.lifecycle.ListByBank(c.Request().Context(), c.Param("bank_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": out, "count": len(out)})
}

// Dashboard handles GET /banks/:bank_id/dashboard?period=30d.
func (h *BankHandler) Dashboard(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "30d"
	}
	dto, err := h.analytics.BankDashboard(c.Request().Context(), c.Param("bank_id"), period)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
