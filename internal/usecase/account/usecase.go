package account

import (
	"context"
	"errors"

	domainBank "adaptive-lending/internal/domain/bank"
	domainBorrower "adaptive-lending/internal/domain/borrower"
	"adaptive-lending/internal/domain/uow"
	"adaptive-lending/pkg/id"
)

// Usecase registers borrowers and banks and serves their profiles.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx}
}

var ErrInvalidProfile = errors.New("invalid profile")

type RegisterBorrowerInput struct {
	Name           string  `json:"name"             validate:"required"`
	Email          string  `json:"email"            validate:"required,email"`
	Income         float64 `json:"income"           validate:"required,gt=0"`
	Age            int     `json:"age"              validate:"required,gt=18,lt=100"`
	MonthsEmployed int     `json:"months_employed"  validate:"gte=0"`
}

// RegisterBorrower creates a borrower with the starting credit score and
// no debt.
func (u *Usecase) RegisterBorrower(ctx context.Context, in RegisterBorrowerInput) (*domainBorrower.Borrower, error) {
	if in.Name == "" || in.Email == "" || in.Income <= 0 || in.Age <= 18 || in.Age >= 100 || in.MonthsEmployed < 0 {
		return nil, ErrInvalidProfile
	}
	b := domainBorrower.New(id.NewUUID(), in.Name, in.Email, in.Income, in.Age, in.MonthsEmployed)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Borrowers.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

type RegisterBankInput struct {
	Name            string  `json:"bank_name"         validate:"required"`
	MaxDTIThreshold float64 `json:"max_dti_threshold" validate:"gte=0,lte=1"`
}

// RegisterBank creates a bank with empty counters.
func (u *Usecase) RegisterBank(ctx context.Context, in RegisterBankInput) (*domainBank.Bank, error) {
	if in.Name == "" || in.MaxDTIThreshold < 0 || in.MaxDTIThreshold > 1 {
		return nil, ErrInvalidProfile
	}
	threshold := in.MaxDTIThreshold
	if threshold == 0 {
		threshold = 0.45
	}
	b := &domainBank.Bank{
		BankID:          id.NewUUID(),
		Name:            in.Name,
		MaxDTIThreshold: threshold,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Banks.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// BorrowerProfile returns the borrower record.
func (u *Usecase) BorrowerProfile(ctx context.Context, borrowerID string) (*domainBorrower.Borrower, error) {
	var out *domainBorrower.Borrower
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Borrowers.GetByBorrowerID(ctx, borrowerID)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
