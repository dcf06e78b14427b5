package loanpackage

import (
	"context"
	"errors"
	"time"

	domain "adaptive-lending/internal/domain/loanpackage"
	"adaptive-lending/internal/domain/uow"
	"adaptive-lending/pkg/id"
)

// Usecase manages a bank's published loan packages. Deletion is a soft
// deactivation so historical loans keep a valid package reference.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx}
}

var (
	ErrInvalidPackage = errors.New("invalid loan package")
	ErrNotOwner       = errors.New("package belongs to another bank")
)

type CreateInput struct {
	Name               string  `json:"name"                 validate:"required"`
	Amount             float64 `json:"amount"               validate:"required,gt=0"`
	InterestRate       float64 `json:"interest_rate"        validate:"required,gt=0,lte=50"`
	LoanTermMonths     int     `json:"loan_term_months"     validate:"required,gt=0"`
	MinimumCreditScore float64 `json:"minimum_credit_score" validate:"gte=300,lte=850"`
	Description        string  `json:"description"`
}

func (in CreateInput) validate() error {
	if in.Name == "" || in.Amount <= 0 || in.InterestRate <= 0 || in.InterestRate > 50 ||
		in.LoanTermMonths <= 0 || in.MinimumCreditScore < 300 || in.MinimumCreditScore > 850 {
		return ErrInvalidPackage
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, bankID string, in CreateInput) (*domain.Package, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &domain.Package{
		PackageID:          id.NewUUID(),
		BankID:             bankID,
		Name:               in.Name,
		Amount:             in.Amount,
		InterestRate:       in.InterestRate,
		LoanTermMonths:     in.LoanTermMonths,
		MinimumCreditScore: in.MinimumCreditScore,
		Description:        in.Description,
		IsActive:           true,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Packages.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns active packages, all of them or one bank's.
func (u *Usecase) List(ctx context.Context, bankID string) ([]domain.Package, error) {
	var out []domain.Package
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		if bankID == "" {
			out, err = r.Packages.ListActive(ctx)
		} else {
			out, err = r.Packages.ListActiveByBank(ctx, bankID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, packageID string) (*domain.Package, error) {
	var out *domain.Package
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Packages.GetByPackageID(ctx, packageID)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateInput struct {
	Name               string  `json:"name"`
	Amount             float64 `json:"amount"`
	InterestRate       float64 `json:"interest_rate"`
	LoanTermMonths     int     `json:"loan_term_months"`
	MinimumCreditScore float64 `json:"minimum_credit_score"`
	Description        string  `json:"description"`
}

// Update overwrites the provided fields; zero values leave a field
// unchanged.
func (u *Usecase) Update(ctx context.Context, bankID, packageID string, in UpdateInput) (*domain.Package, error) {
	var out *domain.Package
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Packages.GetByPackageID(ctx, packageID)
		if err != nil {
			return err
		}
		if p.BankID != bankID {
			return ErrNotOwner
		}
		if in.Name != "" {
			p.Name = in.Name
		}
		if in.Amount > 0 {
			p.Amount = in.Amount
		}
		if in.InterestRate > 0 && in.InterestRate <= 50 {
			p.InterestRate = in.InterestRate
		}
		if in.LoanTermMonths > 0 {
			p.LoanTermMonths = in.LoanTermMonths
		}
		if in.MinimumCreditScore >= 300 && in.MinimumCreditScore <= 850 {
			p.MinimumCreditScore = in.MinimumCreditScore
		}
		if in.Description != "" {
			p.Description = in.Description
		}
		p.UpdatedAt = time.Now().UTC()
		if err := r.Packages.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deactivate retires a package from the catalog.
func (u *Usecase) Deactivate(ctx context.Context, bankID, packageID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Packages.GetByPackageID(ctx, packageID)
		if err != nil {
			return err
		}
		if p.BankID != bankID {
			return ErrNotOwner
		}
		p.IsActive = false
		return r.Packages.Save(ctx, p)
	})
}
