package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	borrowerDomain "adaptive-lending/internal/domain/borrower"
)

type BorrowerRepository struct{ db *gorm.DB }

func NewBorrowerRepository(db *gorm.DB) *BorrowerRepository { return &BorrowerRepository{db: db} }

func (r *BorrowerRepository) Create(ctx context.Context, b *borrowerDomain.Borrower) error {
	return mapErr(r.db.WithContext(ctx).Create(b).Error, borrowerDomain.ErrNotFound)
}

func (r *BorrowerRepository) GetByBorrowerID(ctx context.Context, borrowerID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).Where("borrower_id = ?", borrowerID).First(&out)
	if res.Error != nil {
		return nil, mapErr(res.Error, borrowerDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *BorrowerRepository) GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*borrowerDomain.Borrower, error) {
	var out borrowerDomain.Borrower
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("borrower_id = ?", borrowerID).
		First(&out)
	if res.Error != nil {
		return nil, mapErr(res.Error, borrowerDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *BorrowerRepository) Save(ctx context.Context, b *borrowerDomain.Borrower) error {
	return mapErr(r.db.WithContext(ctx).Save(b).Error, borrowerDomain.ErrNotFound)
}
