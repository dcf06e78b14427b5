package lifecycle

import (
	"context"
	"log"
	"time"

	domainLoan "adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/domain/uow"
)

// Usecase owns the loan status transitions and the side effects each one
// triggers. The loan-side write commits inside the locked transaction and
// is the source of truth; borrower and bank updates ride in the same unit
// and re-derive from the transition delta.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx}
}

type StatusDTO struct {
	LoanID          string     `json:"loan_id"`
	Status          string     `json:"status"`
	BankID          string     `json:"bank_id,omitempty"`
	NextPaymentDate *time.Time `json:"next_payment_date,omitempty"`
}

// Approve commits the credit decision: the loan moves to approved, the
// borrower's debt grows by the loan amount with the DTI rederived, and
// the bank's counters advance.
func (u *Usecase) Approve(ctx context.Context, loanID, bankID string) (*StatusDTO, error) {
	var dto *StatusDTO
	err := uow.RetryConflict(uow.DefaultConflictRetries, func() error {
		return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
			now := time.Now().UTC()
			if err := l.Transition(domainLoan.StatusApproved, now); err != nil {
				return err
			}
			l.BankID = bankID
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}

			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, l.BorrowerID)
			if err != nil {
				return err
			}
			b.AddDebt(l.TotalAmount)
			if err := r.Borrowers.Save(ctx, b); err != nil {
				return err
			}

			bk, err := r.Banks.GetByBankIDForUpdate(ctx, bankID)
			if err != nil {
				return err
			}
			bk.RecordApproval()
			if err := r.Banks.Save(ctx, bk); err != nil {
				return err
			}

			dto = &StatusDTO{LoanID: l.LoanID, Status: string(l.Status), BankID: l.BankID}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject declines a pending application. No borrower debt changes; only
// the bank's rejected counter moves.
func (u *Usecase) Reject(ctx context.Context, loanID, bankID string) (*StatusDTO, error) {
	var dto *StatusDTO
	err := uow.RetryConflict(uow.DefaultConflictRetries, func() error {
		return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
			if err := l.Transition(domainLoan.StatusRejected, time.Now().UTC()); err != nil {
				return err
			}
			l.BankID = bankID
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}

			bk, err := r.Banks.GetByBankIDForUpdate(ctx, bankID)
			if err != nil {
				return err
			}
			bk.RecordRejection()
			if err := r.Banks.Save(ctx, bk); err != nil {
				return err
			}

			dto = &StatusDTO{LoanID: l.LoanID, Status: string(l.Status), BankID: l.BankID}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Activate starts servicing. Only the bank that approved the loan may
// activate it. The first payment falls due on the schedule's first due
// date, or 30 days out when the loan carries no schedule.
func (u *Usecase) Activate(ctx context.Context, loanID, bankID string) (*StatusDTO, error) {
	var dto *StatusDTO
	err := uow.RetryConflict(uow.DefaultConflictRetries, func() error {
		return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
			if l.Status == domainLoan.StatusApproved && l.BankID != bankID {
				return domainLoan.ErrUnauthorized
			}
			now := time.Now().UTC()
			if err := l.Transition(domainLoan.StatusActive, now); err != nil {
				return err
			}
			next := now.Add(30 * 24 * time.Hour)
			if len(l.Schedule) > 0 {
				next = l.Schedule[0].DueDate
			}
			l.NextPaymentDate = &next
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			dto = &StatusDTO{LoanID: l.LoanID, Status: string(l.Status), BankID: l.BankID, NextPaymentDate: l.NextPaymentDate}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MarkDefaulted records a default signalled by the out-of-band
// delinquency process. The engine exposes the transition but does not
// decide when to fire it.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string) (*StatusDTO, error) {
	var dto *StatusDTO
	err := uow.RetryConflict(uow.DefaultConflictRetries, func() error {
		return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
			if err := l.Transition(domainLoan.StatusDefaulted, time.Now().UTC()); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}

			// Best-effort follower: release the loan from the bank's
			// managed book. The loan-side transition above already
			// committed the truth.
			if l.BankID != "" {
				if bk, err := r.Banks.GetByBankIDForUpdate(ctx, l.BankID); err == nil {
					bk.RecordClosure()
					if err := r.Banks.Save(ctx, bk); err != nil {
						log.Printf("lifecycle: bank counter update failed for %s: %v", l.BankID, err)
					}
				}
			}

			dto = &StatusDTO{LoanID: l.LoanID, Status: string(l.Status), BankID: l.BankID}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListPending returns loans awaiting a bank decision.
func (u *Usecase) ListPending(ctx context.Context) ([]domainLoan.Loan, error) {
	var out []domainLoan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.ListByStatus(ctx, domainLoan.StatusPending)
		if err != nil {
			return err
		}
		out = loans
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByBank returns all loans processed by a bank.
func (u *Usecase) ListByBank(ctx context.Context, bankID string) ([]domainLoan.Loan, error) {
	var out []domainLoan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.ListByBank(ctx, bankID)
		if err != nil {
			return err
		}
		out = loans
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
