package borrower

import (
	"errors"
	"strings"
	"time"

	"adaptive-lending/internal/domain/scoring"
)

var ErrNotFound = errors.New("borrower not found")

// Borrower is the ledger record for a customer. TotalDebt carries the sum
// of amount-remaining over the borrower's non-terminal loans; it is kept
// incrementally by the lifecycle and repayment flows, never recomputed
// from scratch. CurrentDTI is always rederived right after a debt
// mutation, never written independently.
type Borrower struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID string `gorm:"size:36;uniqueIndex:ux_borrowers_borrower_id" json:"borrower_id"`
	Name       string `gorm:"size:128" json:"name"`
	Email      string `gorm:"size:128" json:"email"`

	Income         float64 `gorm:"type:decimal(18,2)" json:"income"`
	Age            int     `json:"age"`
	MonthsEmployed int     `json:"months_employed"`
	CreditScore    float64 `gorm:"type:decimal(6,2)" json:"credit_score"`
	TotalDebt      float64 `gorm:"type:decimal(18,2)" json:"total_debt"`
	CurrentDTI     float64 `gorm:"type:decimal(8,4)" json:"current_dti"`

	// Ordered list of loan ids, most recent last.
	LoanHistory string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Borrower) TableName() string { return "borrowers" }

// New returns a borrower with the starting credit score and no debt.
func New(borrowerID, name, email string, income float64, age, monthsEmployed int) *Borrower {
	return &Borrower{
		BorrowerID:     borrowerID,
		Name:           name,
		Email:          email,
		Income:         income,
		Age:            age,
		MonthsEmployed: monthsEmployed,
		CreditScore:    scoring.DefaultScore,
	}
}

// AddDebt recognizes new debt and rederives the DTI.
func (b *Borrower) AddDebt(amount float64) {
	b.TotalDebt += amount
	b.recomputeDTI()
}

// ReduceDebt applies a repayment delta, flooring total debt at zero, and
// rederives the DTI.
func (b *Borrower) ReduceDebt(amount float64) {
	b.TotalDebt -= amount
	if b.TotalDebt < 0 {
		b.TotalDebt = 0
	}
	b.recomputeDTI()
}

func (b *Borrower) recomputeDTI() {
	if b.Income <= 0 {
		b.CurrentDTI = 0
		return
	}
	b.CurrentDTI = b.TotalDebt / b.Income
}

// AppendLoan records a loan id at the end of the borrower's history.
func (b *Borrower) AppendLoan(loanID string) {
	if b.LoanHistory == "" {
		b.LoanHistory = loanID
		return
	}
	b.LoanHistory += "," + loanID
}

// Loans returns the ordered loan history.
func (b *Borrower) Loans() []string {
	if b.LoanHistory == "" {
		return nil
	}
	return strings.Split(b.LoanHistory, ",")
}
