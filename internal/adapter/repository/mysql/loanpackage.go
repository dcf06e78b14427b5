package mysql

import (
	"context"

	"gorm.io/gorm"

	packageDomain "adaptive-lending/internal/domain/loanpackage"
)

type PackageRepository struct{ db *gorm.DB }

func NewPackageRepository(db *gorm.DB) *PackageRepository { return &PackageRepository{db: db} }

func (r *PackageRepository) Create(ctx context.Context, p *packageDomain.Package) error {
	return mapErr(r.db.WithContext(ctx).Create(p).Error, packageDomain.ErrNotFound)
}

func (r *PackageRepository) GetByPackageID(ctx context.Context, packageID string) (*packageDomain.Package, error) {
	var out packageDomain.Package
	res := r.db.WithContext(ctx).Where("package_id = ?", packageID).First(&out)
	if res.Error != nil {
		return nil, mapErr(res.Error, packageDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PackageRepository) ListActive(ctx context.Context) ([]packageDomain.Package, error) {
	var out []packageDomain.Package
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, mapErr(err, packageDomain.ErrNotFound)
	}
	return out, nil
}

func (r *PackageRepository) ListActiveByBank(ctx context.Context, bankID string) ([]packageDomain.Package, error) {
	var out []packageDomain.Package
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND bank_id = ?", true, bankID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, mapErr(err, packageDomain.ErrNotFound)
	}
	return out, nil
}

func (r *PackageRepository) Save(ctx context.Context, p *packageDomain.Package) error {
	return mapErr(r.db.WithContext(ctx).Save(p).Error, packageDomain.ErrNotFound)
}
