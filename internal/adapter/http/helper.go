package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	bankDomain "adaptive-lending/internal/domain/bank"
	borrowerDomain "adaptive-lending/internal/domain/borrower"
	loanDomain "adaptive-lending/internal/domain/loan"
	packageDomain "adaptive-lending/internal/domain/loanpackage"
	"adaptive-lending/internal/usecase/account"
	packageUC "adaptive-lending/internal/usecase/loanpackage"
	"adaptive-lending/internal/usecase/repayment"
)

// writeDomainErr maps domain errors onto HTTP responses. The mapping is
// the single place handler code translates sentinels into status codes.
func writeDomainErr(c echo.Context, err error) error {
	var appErr *loanDomain.ApplicationError
	if errors.As(err, &appErr) {
		details := make([]FieldError, 0, len(appErr.Issues))
		for _, issue := range appErr.Issues {
			details = append(details, FieldError{Field: issue.Field, Message: issue.Message})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: details,
		})
	}

	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, borrowerDomain.ErrNotFound),
		errors.Is(err, bankDomain.ErrNotFound),
		errors.Is(err, packageDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loanDomain.ErrUnauthorized),
		errors.Is(err, packageUC.ErrNotOwner):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrInvalidState),
		errors.Is(err, loanDomain.ErrStoreConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loanDomain.ErrInvalidApplication),
		errors.Is(err, repayment.ErrInvalidAmount),
		errors.Is(err, account.ErrInvalidProfile),
		errors.Is(err, packageUC.ErrInvalidPackage),
		errors.Is(err, packageDomain.ErrInactive),
		errors.Is(err, packageDomain.ErrIneligible):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
