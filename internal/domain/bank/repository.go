package bank

import "context"

type Repository interface {
	Create(ctx context.Context, b *Bank) error
	GetByBankID(ctx context.Context, bankID string) (*Bank, error)
	// GetByBankIDForUpdate locks the row for the enclosing transaction.
	GetByBankIDForUpdate(ctx context.Context, bankID string) (*Bank, error)
	Save(ctx context.Context, b *Bank) error
}
