package loanpackage

import "context"

type Repository interface {
	Create(ctx context.Context, p *Package) error
	GetByPackageID(ctx context.Context, packageID string) (*Package, error)
	ListActive(ctx context.Context) ([]Package, error)
	ListActiveByBank(ctx context.Context, bankID string) ([]Package, error)
	Save(ctx context.Context, p *Package) error
}
