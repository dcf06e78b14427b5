package repayment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	domainLoan "adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/domain/uow"
	"adaptive-lending/pkg/id"
)

// Usecase applies payments against active loans. Everything a payment
// touches (the payment record, the loan balance and status, the schedule
// bookkeeping, the borrower's debt) commits as one unit against the
// locked loan row.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx}
}

var ErrInvalidAmount = errors.New("payment amount must be greater than 0")

type ResultDTO struct {
	PaymentID       string  `json:"payment_id"`
	LoanID          string  `json:"loan_id"`
	AmountRemaining float64 `json:"amount_remaining"`
	LoanStatus      string  `json:"loan_status"`
	BorrowerDTI     float64 `json:"borrower_dti"`
}

// Apply processes one payment. Preconditions: the loan exists and is
// active. On full payoff the loan transitions to paid in the same unit.
func (u *Usecase) Apply(ctx context.Context, loanID string, amount float64) (*ResultDTO, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var dto *ResultDTO
	err := uow.RetryConflict(uow.DefaultConflictRetries, func() error {
		return u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
			if l.Status != domainLoan.StatusActive {
				return fmt.Errorf("loan %s is %s: %w", l.LoanID, l.Status, domainLoan.ErrInvalidState)
			}
			now := time.Now().UTC()

			// 1. Append the immutable payment record.
			due := now
			if l.NextPaymentDate != nil {
				due = *l.NextPaymentDate
			}
			p := &domainLoan.Payment{
				PaymentID:   id.NewUUID(),
				LoanID:      l.LoanID,
				Amount:      amount,
				PaymentDate: now,
				DueDate:     due,
				Status:      "paid",
			}
			if err := r.Payments.Create(ctx, p); err != nil {
				return err
			}

			// 2. Decrement the balance; the stored value floors at zero.
			l.AmountRemaining = math.Max(0, l.AmountRemaining-amount)

			// 3. Full payoff fires the terminal transition.
			if l.AmountRemaining <= 0 {
				if err := l.Transition(domainLoan.StatusPaid, now); err != nil {
					return err
				}
				l.NextPaymentDate = nil
			} else {
				next := now.Add(30 * 24 * time.Hour)
				l.NextPaymentDate = &next
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}

			// 4. Best-effort schedule bookkeeping; never blocks payoff.
			u.markInstallment(ctx, r, l, now, amount)

			// 5. Borrower debt follows the payment delta.
			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, l.BorrowerID)
			if err != nil {
				return err
			}
			b.ReduceDebt(amount)
			if err := r.Borrowers.Save(ctx, b); err != nil {
				return err
			}

			// A closed loan leaves the bank's managed book.
			if l.Status == domainLoan.StatusPaid && l.BankID != "" {
				u.closeBankPosition(ctx, r, l.BankID)
			}

			dto = &ResultDTO{
				PaymentID:       p.PaymentID,
				LoanID:          l.LoanID,
				AmountRemaining: l.AmountRemaining,
				LoanStatus:      string(l.Status),
				BorrowerDTI:     b.CurrentDTI,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// markInstallment flips the earliest pending installment already due.
// Failures here are logged and swallowed: schedule rows are reporting
// detail, the loan balance is the authority.
func (u *Usecase) markInstallment(ctx context.Context, r uow.Repos, l *domainLoan.Loan, now time.Time, amount float64) {
	for i := range l.Schedule {
		inst := &l.Schedule[i]
		if inst.Status != domainLoan.InstallmentPending || inst.DueDate.After(now) {
			continue
		}
		inst.Status = domainLoan.InstallmentPaid
		paid := now
		inst.PaidDate = &paid
		inst.AmountPaid = amount
		if err := r.Loans.MarkInstallmentPaid(ctx, inst); err != nil {
			log.Printf("repayment: installment %d of loan %s not marked: %v", inst.Month, l.LoanID, err)
		}
		return
	}
}

func (u *Usecase) closeBankPosition(ctx context.Context, r uow.Repos, bankID string) {
	bk, err := r.Banks.GetByBankIDForUpdate(ctx, bankID)
	if err != nil {
		log.Printf("repayment: bank %s not loaded for closure: %v", bankID, err)
		return
	}
	bk.RecordClosure()
	if err := r.Banks.Save(ctx, bk); err != nil {
		log.Printf("repayment: bank %s closure not recorded: %v", bankID, err)
	}
}

// History lists the append-only payment records for a loan.
func (u *Usecase) History(ctx context.Context, loanID string) ([]domainLoan.Payment, error) {
	var out []domainLoan.Payment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Loans.GetByLoanID(ctx, loanID); err != nil {
			return err
		}
		payments, err := r.Payments.ListByLoan(ctx, loanID)
		if err != nil {
			return err
		}
		out = payments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
