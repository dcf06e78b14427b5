package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	bankDomain "adaptive-lending/internal/domain/bank"
	borrowerDomain "adaptive-lending/internal/domain/borrower"
	packageDomain "adaptive-lending/internal/domain/loanpackage"
	"adaptive-lending/pkg/id"
)

func openPartyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&borrowerDomain.Borrower{}, &bankDomain.Bank{}, &packageDomain.Package{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestBorrowerCreateGetSave(t *testing.T) {
	db := openPartyTestDB(t)
	repo := NewBorrowerRepository(db)
	ctx := context.Background()

	borrowerID := id.NewUUID()
	b := borrowerDomain.New(borrowerID, "Ada", "ada@example.com", 90000, 35, 48)
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByBorrowerID(ctx, borrowerID)
	if err != nil {
		t.Fatalf("GetByBorrowerID: %v", err)
	}
	if got.Name != "Ada" || got.CreditScore != 650 {
		t.Fatalf("unexpected borrower: %+v", got)
	}

	got.AddDebt(12000)
	got.AppendLoan("loan-1")
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := repo.GetByBorrowerIDForUpdate(ctx, borrowerID)
	if err != nil {
		t.Fatalf("GetByBorrowerIDForUpdate: %v", err)
	}
	if again.TotalDebt != 12000 || again.CurrentDTI == 0 {
		t.Fatalf("debt not persisted: %+v", again)
	}
	if loans := again.Loans(); len(loans) != 1 || loans[0] != "loan-1" {
		t.Fatalf("loan history = %v, want [loan-1]", loans)
	}

	if _, err := repo.GetByBorrowerID(ctx, id.NewUUID()); !errors.Is(err, borrowerDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBankCreateGetSave(t *testing.T) {
	db := openPartyTestDB(t)
	repo := NewBankRepository(db)
	ctx := context.Background()

	bankID := id.NewUUID()
	if err := repo.Create(ctx, &bankDomain.Bank{BankID: bankID, Name: "First Bank", MaxDTIThreshold: 0.45}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByBankIDForUpdate(ctx, bankID)
	if err != nil {
		t.Fatalf("GetByBankIDForUpdate: %v", err)
	}
	got.RecordApproval()
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := repo.GetByBankID(ctx, bankID)
	if err != nil {
		t.Fatalf("GetByBankID: %v", err)
	}
	if again.LoansApproved != 1 || again.LoansUnderManagement != 1 {
		t.Fatalf("counters = %d/%d, want 1/1", again.LoansApproved, again.LoansUnderManagement)
	}

	if _, err := repo.GetByBankID(ctx, id.NewUUID()); !errors.Is(err, bankDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPackageCatalog(t *testing.T) {
	db := openPartyTestDB(t)
	repo := NewPackageRepository(db)
	ctx := context.Background()

	mk := func(bankID string, active bool) *packageDomain.Package {
		p := &packageDomain.Package{
			PackageID:          id.NewUUID(),
			BankID:             bankID,
			Name:               "Starter",
			Amount:             6000,
			InterestRate:       9,
			LoanTermMonths:     6,
			MinimumCreditScore: 600,
			IsActive:           active,
		}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return p
	}

	p1 := mk("bank-1", true)
	mk("bank-2", true)
	mk("bank-1", false)

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active packages = %d, want 2", len(active))
	}

	mine, err := repo.ListActiveByBank(ctx, "bank-1")
	if err != nil {
		t.Fatalf("ListActiveByBank: %v", err)
	}
	if len(mine) != 1 || mine[0].PackageID != p1.PackageID {
		t.Fatalf("bank-1 packages = %+v, want only %s", mine, p1.PackageID)
	}

	p1.InterestRate = 7.5
	if err := repo.Save(ctx, p1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByPackageID(ctx, p1.PackageID)
	if err != nil {
		t.Fatalf("GetByPackageID: %v", err)
	}
	if got.InterestRate != 7.5 {
		t.Fatalf("rate = %v, want 7.5", got.InterestRate)
	}

	if _, err := repo.GetByPackageID(ctx, id.NewUUID()); !errors.Is(err, packageDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
