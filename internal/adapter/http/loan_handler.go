package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/usecase/application"
	"adaptive-lending/internal/usecase/repayment"
)

type LoanHandler struct {
	apps  *application.Usecase
	repay *repayment.Usecase
}

func NewLoanHandler(apps *application.Usecase, repay *repayment.Usecase) *LoanHandler {
	return &LoanHandler{apps: apps, repay: repay}
}

type applyLoanReq struct {
	Income         float64 `json:"income"           validate:"required,gt=0"`
	InterestRate   float64 `json:"interest_rate"    validate:"required,gt=0,lte=50"`
	LoanAmount     float64 `json:"loan_amount"      validate:"required,gt=0,dec2"`
	Age            int     `json:"age"              validate:"required,gt=18,lt=100"`
	CreditScore    float64 `json:"credit_score"     validate:"required,gte=300,lte=850"`
	MonthsEmployed int     `json:"months_employed"  validate:"gte=0"`
	DTIRatio       float64 `json:"dti_ratio"        validate:"gte=0,lte=1"`
	LoanTermMonths int     `json:"loan_term_months" validate:"required,gt=0"`
	Purpose        string  `json:"purpose"`
}

// Apply handles POST /customers/:borrower_id/loans.
func (h *LoanHandler) Apply(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if borrowerID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing borrower_id path param"})
	}
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.apps.Submit(c.Request().Context(), borrowerID, loanDomain.Application{
		Income:         req.Income,
		InterestRate:   req.InterestRate,
		LoanAmount:     req.LoanAmount,
		Age:            req.Age,
		CreditScore:    req.CreditScore,
		MonthsEmployed: req.MonthsEmployed,
		DTIRatio:       req.DTIRatio,
		LoanTermMonths: req.LoanTermMonths,
		Purpose:        req.Purpose,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type applyPackageReq struct {
	PackageID string `json:"package_id" validate:"required,uuid36"`
	Purpose   string `json:"purpose"`
}

// ApplyPackage handles POST /customers/:borrower_id/loans/package.
func (h *LoanHandler) ApplyPackage(c echo.Context) error {
	borrowerID := c.Param("borrower_id")
	if borrowerID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing borrower_id path param"})
	}
	var req applyPackageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.apps.SubmitWithPackage(c.Request().Context(), borrowerID, req.PackageID, req.Purpose)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// GetLoan handles GET /loans/:loan_id.
func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.apps.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListBorrowerLoans handles GET /customers/:borrower_id/loans.
func (h *LoanHandler) ListBorrowerLoans(c echo.Context) error {
	out, err := h.apps.ListByBorrower(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": out, "count": len(out)})
}

type repayReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

// Repay handles POST /loans/:loan_id/repay.
func (h *LoanHandler) Repay(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.repay.Apply(c.Request().Context(), loanID, req.Amount)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// PaymentHistory handles GET /loans/:loan_id/payments.
func (h *LoanHandler) PaymentHistory(c echo.Context) error {
	out, err := h.repay.History(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": out, "count": len(out)})
}
