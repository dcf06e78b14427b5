package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "adaptive-lending/internal/domain/loan"
	"adaptive-lending/pkg/id"
)

// openTestDB creates an in-memory sqlite DB with the full ledger schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Loan{}, &domain.Installment{}, &domain.Payment{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, borrowerID string) *domain.Loan {
	firstDue := time.Now().UTC().Add(30 * 24 * time.Hour)
	return &domain.Loan{
		LoanID:          loanID,
		BorrowerID:      borrowerID,
		TotalAmount:     12000,
		AmountRemaining: 12000,
		InterestRate:    12,
		TermMonths:      12,
		Status:          domain.StatusPending,
		Schedule:        domain.GenerateSchedule(12000, 12, 12, firstDue),
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestLoanCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewUUID()
	l := makeLoan(loanID, id.NewUUID())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.Status != domain.StatusPending {
		t.Errorf("unexpected loan: %+v", got)
	}
	if len(got.Schedule) != 12 {
		t.Fatalf("schedule rows = %d, want 12", len(got.Schedule))
	}
	for i, inst := range got.Schedule {
		if inst.Month != i+1 {
			t.Fatalf("schedule out of order at %d: month %d", i, inst.Month)
		}
	}
}

func TestLoanGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), id.NewUUID())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoanSave_LeavesScheduleAlone(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewUUID()
	l := makeLoan(loanID, id.NewUUID())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.Status = domain.StatusApproved
	l.BankID = "bank-1"
	// A stale in-memory schedule must not leak back into the table.
	l.Schedule[0].Status = domain.InstallmentPaid
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != domain.StatusApproved || got.BankID != "bank-1" {
		t.Fatalf("loan not updated: %+v", got)
	}
	if got.Schedule[0].Status != domain.InstallmentPending {
		t.Fatalf("Save clobbered a schedule row: %+v", got.Schedule[0])
	}
}

func TestLoanGetForUpdate_LoadsSchedule(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewUUID()
	if err := repo.Create(ctx, makeLoan(loanID, id.NewUUID())); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanIDForUpdate: %v", err)
	}
	if len(got.Schedule) != 12 {
		t.Fatalf("schedule rows = %d, want 12", len(got.Schedule))
	}
}

func TestMarkInstallmentPaid(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewUUID()
	l := makeLoan(loanID, id.NewUUID())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	inst := l.Schedule[0]
	now := time.Now().UTC()
	inst.Status = domain.InstallmentPaid
	inst.PaidDate = &now
	inst.AmountPaid = inst.AmountDue
	if err := repo.MarkInstallmentPaid(ctx, &inst); err != nil {
		t.Fatalf("MarkInstallmentPaid: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Schedule[0].Status != domain.InstallmentPaid || got.Schedule[0].PaidDate == nil {
		t.Fatalf("installment not marked: %+v", got.Schedule[0])
	}
	if got.Schedule[1].Status != domain.InstallmentPending {
		t.Fatalf("wrong row touched: %+v", got.Schedule[1])
	}

	// Marking the same row again must refuse: pending rows only.
	if err := repo.MarkInstallmentPaid(ctx, &inst); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on re-mark, got %v", err)
	}
}

func TestLoanLists(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := makeLoan(id.NewUUID(), "borrower-a")
	b := makeLoan(id.NewUUID(), "borrower-a")
	c := makeLoan(id.NewUUID(), "borrower-b")
	c.Status = domain.StatusActive
	c.BankID = "bank-1"
	for _, l := range []*domain.Loan{a, b, c} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	byBorrower, err := repo.ListByBorrower(ctx, "borrower-a")
	if err != nil {
		t.Fatalf("ListByBorrower: %v", err)
	}
	if len(byBorrower) != 2 {
		t.Fatalf("borrower-a loans = %d, want 2", len(byBorrower))
	}
	if len(byBorrower[0].Schedule) != 12 {
		t.Fatalf("list did not preload schedule")
	}

	pending, err := repo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending loans = %d, want 2", len(pending))
	}

	byBank, err := repo.ListByBank(ctx, "bank-1")
	if err != nil {
		t.Fatalf("ListByBank: %v", err)
	}
	if len(byBank) != 1 || byBank[0].LoanID != c.LoanID {
		t.Fatalf("bank-1 loans = %+v, want only %s", byBank, c.LoanID)
	}
}

func TestPaymentCreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	loanID := id.NewUUID()
	now := time.Now().UTC()
	for _, amount := range []float64{500, 700} {
		p := &domain.Payment{
			PaymentID:   id.NewUUID(),
			LoanID:      loanID,
			Amount:      amount,
			PaymentDate: now,
			DueDate:     now,
			Status:      "paid",
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListByLoan(ctx, loanID)
	if err != nil {
		t.Fatalf("ListByLoan: %v", err)
	}
	if len(got) != 2 || got[0].Amount != 500 || got[1].Amount != 700 {
		t.Fatalf("payments = %+v, want 500 then 700", got)
	}

	none, err := repo.ListByLoan(ctx, id.NewUUID())
	if err != nil {
		t.Fatalf("ListByLoan empty: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no payments, got %d", len(none))
	}
}
