package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bankDomain "adaptive-lending/internal/domain/bank"
)

type BankRepository struct{ db *gorm.DB }

func NewBankRepository(db *gorm.DB) *BankRepository { return &BankRepository{db: db} }

func (r *BankRepository) Create(ctx context.Context, b *bankDomain.Bank) error {
	return mapErr(r.db.WithContext(ctx).Create(b).Error, bankDomain.ErrNotFound)
}

func (r *BankRepository) GetByBankID(ctx context.Context, bankID string) (*bankDomain.Bank, error) {
	var out bankDomain.Bank
	res := r.db.WithContext(ctx).Where("bank_id = ?", bankID).First(&out)
	if res.Error != nil {
		return nil, mapErr(res.Error, bankDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *BankRepository) GetByBankIDForUpdate(ctx context.Context, bankID string) (*bankDomain.Bank, error) {
	var out bankDomain.Bank
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("bank_id = ?", bankID).
		First(&out)
	if res.Error != nil {
		return nil, mapErr(res.Error, bankDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *BankRepository) Save(ctx context.Context, b *bankDomain.Bank) error {
	return mapErr(r.db.WithContext(ctx).Save(b).Error, bankDomain.ErrNotFound)
}
