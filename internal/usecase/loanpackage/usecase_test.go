package loanpackage

import (
	"context"
	"errors"
	"testing"

	domain "adaptive-lending/internal/domain/loanpackage"
	"adaptive-lending/internal/testutil/storemock"
)

func createInput() CreateInput {
	return CreateInput{
		Name:               "Starter",
		Amount:             6000,
		InterestRate:       9,
		LoanTermMonths:     6,
		MinimumCreditScore: 600,
		Description:        "Entry-level personal loan",
	}
}

func TestCreate_AndGet(t *testing.T) {
	s := storemock.New()
	uc := NewUsecase(s)

	p, err := uc.Create(context.Background(), "bank-1", createInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.PackageID == "" {
		t.Fatal("package id not assigned")
	}
	if !p.IsActive {
		t.Fatal("new package must start active")
	}

	got, err := uc.Get(context.Background(), p.PackageID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "Starter" || got.BankID != "bank-1" {
		t.Fatalf("got %+v, want seeded fields", got)
	}
}

func TestCreate_Invalid(t *testing.T) {
	s := storemock.New()
	uc := NewUsecase(s)

	cases := map[string]func(*CreateInput){
		"empty name":    func(in *CreateInput) { in.Name = "" },
		"zero amount":   func(in *CreateInput) { in.Amount = 0 },
		"rate too high": func(in *CreateInput) { in.InterestRate = 80 },
		"zero term":     func(in *CreateInput) { in.LoanTermMonths = 0 },
		"score too low": func(in *CreateInput) { in.MinimumCreditScore = 200 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := createInput()
			mutate(&in)
			if _, err := uc.Create(context.Background(), "bank-1", in); !errors.Is(err, ErrInvalidPackage) {
				t.Fatalf("err = %v, want ErrInvalidPackage", err)
			}
		})
	}
}

func TestList_FiltersByBankAndActive(t *testing.T) {
	s := storemock.New()
	uc := NewUsecase(s)

	p1, _ := uc.Create(context.Background(), "bank-1", createInput())
	if _, err := uc.Create(context.Background(), "bank-2", createInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	retired, _ := uc.Create(context.Background(), "bank-1", createInput())
	if err := uc.Deactivate(context.Background(), "bank-1", retired.PackageID); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}

	all, err := uc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("active packages = %d, want 2", len(all))
	}

	mine, err := uc.List(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("List by bank error: %v", err)
	}
	if len(mine) != 1 || mine[0].PackageID != p1.PackageID {
		t.Fatalf("bank-1 packages = %+v, want only %s", mine, p1.PackageID)
	}
}

func TestUpdate_ZeroValuesLeaveFields(t *testing.T) {
	s := storemock.New()
	uc := NewUsecase(s)

	p, _ := uc.Create(context.Background(), "bank-1", createInput())

	got, err := uc.Update(context.Background(), "bank-1", p.PackageID, UpdateInput{InterestRate: 7.5})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.InterestRate != 7.5 {
		t.Fatalf("rate = %v, want 7.5", got.InterestRate)
	}
	if got.Name != "Starter" || got.Amount != 6000 || got.LoanTermMonths != 6 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdate_WrongBank(t *testing.T) {
	s := storemock.New()
	uc := NewUsecase(s)

	p, _ := uc.Create(context.Background(), "bank-1", createInput())

	if _, err := uc.Update(context.Background(), "bank-2", p.PackageID, UpdateInput{Name: "Hijack"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if err := uc.Deactivate(context.Background(), "bank-2", p.PackageID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestGet_Unknown(t *testing.T) {
	s := storemock.New()
	uc := NewUsecase(s)

	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeactivate_SoftDelete(t *testing.T) {
	s := storemock.New()
	uc := NewUsecase(s)

	p, _ := uc.Create(context.Background(), "bank-1", createInput())
	if err := uc.Deactivate(context.Background(), "bank-1", p.PackageID); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}

	// The record survives; only the catalog hides it.
	got, err := uc.Get(context.Background(), p.PackageID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.IsActive {
		t.Fatal("package still active after deactivation")
	}
}
