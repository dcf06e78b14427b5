package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the enclosing transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error

	ListByBorrower(ctx context.Context, borrowerID string) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	ListByBank(ctx context.Context, bankID string) ([]Loan, error)

	// MarkInstallmentPaid flips one schedule row from pending to paid.
	MarkInstallmentPaid(ctx context.Context, inst *Installment) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	ListByLoan(ctx context.Context, loanID string) ([]Payment, error)
}
