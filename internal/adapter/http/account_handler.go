package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"adaptive-lending/internal/usecase/account"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

// RegisterBorrower handles POST /customers/register.
func (h *AccountHandler) RegisterBorrower(c echo.Context) error {
	var req account.RegisterBorrowerInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	b, err := h.uc.RegisterBorrower(c.Request().Context(), req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// RegisterBank handles POST /banks/register.
func (h *AccountHandler) RegisterBank(c echo.Context) error {
	var req account.RegisterBankInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	b, err := h.uc.RegisterBank(c.Request().Context(), req)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Profile handles GET /customers/:borrower_id.
func (h *AccountHandler) Profile(c echo.Context) error {
	b, err := h.uc.BorrowerProfile(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
