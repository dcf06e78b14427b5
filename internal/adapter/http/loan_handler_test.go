package http

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	domainBorrower "adaptive-lending/internal/domain/borrower"
	domainLoan "adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/domain/risk"
	"adaptive-lending/internal/testutil/storemock"
	"adaptive-lending/internal/usecase/application"
	"adaptive-lending/internal/usecase/repayment"
)

func newLoanServer(s *storemock.Store) *echo.Echo {
	e := newEchoWithValidator()
	h := NewLoanHandler(
		application.NewUsecase(s, risk.Static(0.2)),
		repayment.NewUsecase(s),
	)
	e.POST("/customers/:borrower_id/loans", h.Apply)
	e.POST("/customers/:borrower_id/loans/package", h.ApplyPackage)
	e.GET("/customers/:borrower_id/loans", h.ListBorrowerLoans)
	e.GET("/loans/:loan_id", h.GetLoan)
	e.POST("/loans/:loan_id/repay", h.Repay)
	e.GET("/loans/:loan_id/payments", h.PaymentHistory)
	return e
}

func seedHTTPBorrower(s *storemock.Store) {
	s.SeedBorrower(domainBorrower.New("b-1", "Ada", "ada@example.com", 90000, 35, 48))
}

func applyBody() map[string]any {
	return map[string]any{
		"income":           90000,
		"interest_rate":    12,
		"loan_amount":      12000,
		"age":              35,
		"credit_score":     700,
		"months_employed":  48,
		"dti_ratio":        0.25,
		"loan_term_months": 12,
		"purpose":          "Home",
	}
}

func TestApply_CreatesLoan(t *testing.T) {
	s := storemock.New()
	seedHTTPBorrower(s)
	e := newLoanServer(s)

	var dto application.LoanDTO
	rec := doJSON(t, e, http.MethodPost, "/customers/b-1/loans", mustJSON(t, applyBody()), &dto)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if dto.LoanID == "" || dto.BorrowerID != "b-1" {
		t.Fatalf("dto ids = %q/%q", dto.LoanID, dto.BorrowerID)
	}
	if dto.Status != string(domainLoan.StatusPending) {
		t.Fatalf("status = %q, want pending", dto.Status)
	}
	if len(dto.PaymentSchedule) != 12 {
		t.Fatalf("schedule length = %d, want 12", len(dto.PaymentSchedule))
	}
	if s.Loan(dto.LoanID) == nil {
		t.Fatal("loan not persisted")
	}
}

func TestApply_MalformedBody(t *testing.T) {
	s := storemock.New()
	seedHTTPBorrower(s)
	e := newLoanServer(s)

	rec := doJSON(t, e, http.MethodPost, "/customers/b-1/loans",
		bytes.NewReader([]byte("{not json")), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestApply_ValidationDetails(t *testing.T) {
	s := storemock.New()
	seedHTTPBorrower(s)
	e := newLoanServer(s)

	body := applyBody()
	body["income"] = 0
	body["credit_score"] = 200
	body["loan_amount"] = 100.123

	var resp ErrorResponse
	rec := doJSON(t, e, http.MethodPost, "/customers/b-1/loans", mustJSON(t, body), &resp)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !containsFieldMsg(resp.Details, "Income", "is required") {
		t.Errorf("missing Income detail in %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "CreditScore", "greater than or equal to 300") {
		t.Errorf("missing CreditScore detail in %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "LoanAmount", "2 decimal places") {
		t.Errorf("missing LoanAmount detail in %+v", resp.Details)
	}
}

func TestApply_UnknownBorrower(t *testing.T) {
	s := storemock.New()
	e := newLoanServer(s)

	rec := doJSON(t, e, http.MethodPost, "/customers/ghost/loans", mustJSON(t, applyBody()), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestApplyPackage_RequiresUUID(t *testing.T) {
	s := storemock.New()
	seedHTTPBorrower(s)
	e := newLoanServer(s)

	var resp ErrorResponse
	rec := doJSON(t, e, http.MethodPost, "/customers/b-1/loans/package",
		mustJSON(t, map[string]any{"package_id": "not-a-uuid"}), &resp)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !containsFieldMsg(resp.Details, "PackageID", "lowercase uuid") {
		t.Errorf("missing PackageID detail in %+v", resp.Details)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newLoanServer(storemock.New())

	rec := doJSON(t, e, http.MethodGet, "/loans/ghost", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListBorrowerLoans_Empty(t *testing.T) {
	s := storemock.New()
	seedHTTPBorrower(s)
	e := newLoanServer(s)

	var body struct {
		Count int `json:"count"`
	}
	rec := doJSON(t, e, http.MethodGet, "/customers/b-1/loans", nil, &body)
	if rec.Code != http.StatusOK || body.Count != 0 {
		t.Fatalf("status/count = %d/%d, want 200/0", rec.Code, body.Count)
	}
}

func seedHTTPActiveLoan(s *storemock.Store) {
	b := domainBorrower.New("b-1", "Ada", "ada@example.com", 90000, 35, 48)
	b.AddDebt(12000)
	s.SeedBorrower(b)
	firstDue := time.Now().UTC().Add(-time.Hour)
	s.SeedLoan(&domainLoan.Loan{
		LoanID:          "loan-1",
		BorrowerID:      "b-1",
		BankID:          "bank-1",
		TotalAmount:     12000,
		AmountRemaining: 12000,
		InterestRate:    12,
		TermMonths:      12,
		Status:          domainLoan.StatusActive,
		Schedule:        domainLoan.GenerateSchedule(12000, 12, 12, firstDue),
		NextPaymentDate: &firstDue,
	})
}

func TestRepay_Succeeds(t *testing.T) {
	s := storemock.New()
	seedHTTPActiveLoan(s)
	e := newLoanServer(s)

	var dto repayment.ResultDTO
	rec := doJSON(t, e, http.MethodPost, "/loans/loan-1/repay",
		mustJSON(t, map[string]any{"amount": 1000}), &dto)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if dto.AmountRemaining != 11000 {
		t.Fatalf("remaining = %v, want 11000", dto.AmountRemaining)
	}
	if got := len(s.Payments("loan-1")); got != 1 {
		t.Fatalf("payments = %d, want 1", got)
	}
}

func TestRepay_PendingLoanConflicts(t *testing.T) {
	s := storemock.New()
	b := domainBorrower.New("b-1", "Ada", "ada@example.com", 90000, 35, 48)
	s.SeedBorrower(b)
	s.SeedLoan(&domainLoan.Loan{
		LoanID:          "loan-1",
		BorrowerID:      "b-1",
		TotalAmount:     12000,
		AmountRemaining: 12000,
		InterestRate:    12,
		TermMonths:      12,
		Status:          domainLoan.StatusPending,
	})
	e := newLoanServer(s)

	rec := doJSON(t, e, http.MethodPost, "/loans/loan-1/repay",
		mustJSON(t, map[string]any{"amount": 1000}), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := len(s.Payments("loan-1")); got != 0 {
		t.Fatalf("payments = %d, want 0", got)
	}
}

func TestRepay_RejectsBadAmount(t *testing.T) {
	s := storemock.New()
	seedHTTPActiveLoan(s)
	e := newLoanServer(s)

	rec := doJSON(t, e, http.MethodPost, "/loans/loan-1/repay",
		mustJSON(t, map[string]any{"amount": -5}), nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestPaymentHistory(t *testing.T) {
	s := storemock.New()
	seedHTTPActiveLoan(s)
	e := newLoanServer(s)

	doJSON(t, e, http.MethodPost, "/loans/loan-1/repay", mustJSON(t, map[string]any{"amount": 500}), nil)
	doJSON(t, e, http.MethodPost, "/loans/loan-1/repay", mustJSON(t, map[string]any{"amount": 700}), nil)

	var body struct {
		Count    int `json:"count"`
		Payments []struct {
			Amount float64 `json:"amount"`
		} `json:"payments"`
	}
	rec := doJSON(t, e, http.MethodGet, "/loans/loan-1/payments", nil, &body)
	if rec.Code != http.StatusOK || body.Count != 2 {
		t.Fatalf("status/count = %d/%d, want 200/2", rec.Code, body.Count)
	}
	if body.Payments[0].Amount != 500 || body.Payments[1].Amount != 700 {
		t.Fatalf("amounts = %+v, want 500 then 700", body.Payments)
	}
}
