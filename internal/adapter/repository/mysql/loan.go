package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "adaptive-lending/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	// Schedule rows ride along through the association.
	return mapErr(r.db.WithContext(ctx).Create(l).Error, loanDomain.ErrNotFound)
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	// Schedule rows are owned by MarkInstallmentPaid; a plain Save must
	// never upsert them.
	return mapErr(r.db.WithContext(ctx).Omit("Schedule").Save(l).Error, loanDomain.ErrNotFound)
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("month ASC") }).
		Where("loan_id = ?", loanID).
		First(&out)
	if res.Error != nil {
		return nil, mapErr(res.Error, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	if res.Error != nil {
		return nil, mapErr(res.Error, loanDomain.ErrNotFound)
	}
	// The locking query skips the association; load the schedule inside
	// the same transaction.
	if err := r.db.WithContext(ctx).
		Where("loan_ref = ?", out.ID).
		Order("month ASC").
		Find(&out.Schedule).Error; err != nil {
		return nil, mapErr(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("month ASC") }).
		Where("borrower_id = ?", borrowerID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, mapErr(err, loanDomain.ErrNotFound)
	}
	return out, nil
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, mapErr(err, loanDomain.ErrNotFound)
	}
	return out, nil
}

func (r *LoanRepository) ListByBank(ctx context.Context, bankID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("bank_id = ?", bankID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, mapErr(err, loanDomain.ErrNotFound)
	}
	return out, nil
}

func (r *LoanRepository) MarkInstallmentPaid(ctx context.Context, inst *loanDomain.Installment) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Installment{}).
		Where("id = ? AND status = ?", inst.ID, loanDomain.InstallmentPending).
		Updates(map[string]any{
			"status":      inst.Status,
			"paid_date":   inst.PaidDate,
			"amount_paid": inst.AmountPaid,
		})
	if res.Error != nil {
		return mapErr(res.Error, loanDomain.ErrNotFound)
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	return nil
}

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *loanDomain.Payment) error {
	return mapErr(r.db.WithContext(ctx).Create(p).Error, loanDomain.ErrNotFound)
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID string) ([]loanDomain.Payment, error) {
	var out []loanDomain.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, mapErr(err, loanDomain.ErrNotFound)
	}
	return out, nil
}
