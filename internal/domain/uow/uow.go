package uow

import (
	"context"

	"adaptive-lending/internal/domain/bank"
	"adaptive-lending/internal/domain/borrower"
	"adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/domain/loanpackage"
)

// Repos carries every ledger repository bound to one transaction.
type Repos struct {
	Loans     loan.Repository
	Payments  loan.PaymentRepository
	Borrowers borrower.Repository
	Banks     bank.Repository
	Packages  loanpackage.Repository
}

// UnitOfWork is the ledger store's atomic-update contract: every
// multi-field mutation in the lifecycle and repayment flows runs inside
// WithinTx / WithinLoanTx so concurrent writers on the same record
// serialize. A failed fn rolls the whole unit back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up-front, then runs fn. Concurrent
	// calls on the same loan serialize on that lock.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
