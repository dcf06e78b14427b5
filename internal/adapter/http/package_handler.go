package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	packageUC "adaptive-lending/internal/usecase/loanpackage"
)

type PackageHandler struct{ uc *packageUC.Usecase }

func NewPackageHandler(uc *packageUC.Usecase) *PackageHandler { return &PackageHandler{uc: uc} }

type createPackageReq struct {
	Name               string  `json:"name"                 validate:"required"`
	Amount             float64 `json:"amount"               validate:"required,gt=0,dec2"`
	InterestRate       float64 `json:"interest_rate"        validate:"required,gt=0,lte=50"`
	LoanTermMonths     int     `json:"loan_term_months"     validate:"required,gt=0"`
	MinimumCreditScore float64 `json:"minimum_credit_score" validate:"gte=300,lte=850"`
	Description        string  `json:"description"`
}

// Create handles POST /banks/:bank_id/packages.
func (h *PackageHandler) Create(c echo.Context) error {
	var req createPackageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	p, err := h.uc.Create(c.Request().Context(), c.Param("bank_id"), packageUC.CreateInput{
		Name:               req.Name,
		Amount:             req.Amount,
		InterestRate:       req.InterestRate,
		LoanTermMonths:     req.LoanTermMonths,
		MinimumCreditScore: req.MinimumCreditScore,
		Description:        req.Description,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /packages and GET /banks/:bank_id/packages.
func (h *PackageHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.Param("bank_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"packages": out, "count": len(out)})
}

// Get handles GET /packages/:package_id.
func (h *PackageHandler) Get(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("package_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type updatePackageReq struct {
	Name               string  `json:"name"`
	Amount             float64 `json:"amount"`
	InterestRate       float64 `json:"interest_rate"`
	LoanTermMonths     int     `json:"loan_term_months"`
	MinimumCreditScore float64 `json:"minimum_credit_score"`
	Description        string  `json:"description"`
}

// Update handles PUT /banks/:bank_id/packages/:package_id.
func (h *PackageHandler) Update(c echo.Context) error {
	var req updatePackageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	p, err := h.uc.Update(c.Request().Context(), c.Param("bank_id"), c.Param("package_id"), packageUC.UpdateInput(req))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Deactivate handles DELETE /banks/:bank_id/packages/:package_id.
func (h *PackageHandler) Deactivate(c echo.Context) error {
	if err := h.uc.Deactivate(c.Request().Context(), c.Param("bank_id"), c.Param("package_id")); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deactivated"})
}
