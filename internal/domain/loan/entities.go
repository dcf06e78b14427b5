package loan

import (
	"time"

	"adaptive-lending/internal/domain/scoring"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusDefaulted Status = "defaulted"
)

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
)

// Loan is the ledger record for one loan. The application snapshot columns
// are written once at submission and never mutated afterwards; the engine
// only moves Status, AmountRemaining, BankID, the schedule bookkeeping and
// the lifecycle timestamps.
type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:36;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID string `gorm:"size:36;index:idx_loans_borrower" json:"borrower_id"`
	BankID     string `gorm:"size:36;index:idx_loans_bank" json:"bank_id,omitempty"`

	// Application snapshot (immutable after Submit).
	Income         float64 `gorm:"type:decimal(18,2)" json:"income"`
	InterestRate   float64 `gorm:"type:decimal(6,3)" json:"interest_rate"`
	TotalAmount    float64 `gorm:"type:decimal(18,2)" json:"total_amount"`
	Age            int     `json:"age"`
	MonthsEmployed int     `json:"months_employed"`
	DTIRatio       float64 `gorm:"type:decimal(6,4)" json:"dti_ratio"`
	TermMonths     int     `json:"term_months"`
	Purpose        string  `gorm:"size:128" json:"purpose"`
	PackageID      string  `gorm:"size:36" json:"package_id,omitempty"`

	// Decision snapshot (set once at Submit).
	DefaultProbability float64          `gorm:"type:decimal(9,8)" json:"default_probability"`
	ScoreAtApplication float64         `gorm:"type:decimal(6,2)" json:"credit_score_at_application"`
	GradeAtApplication scoring.Grade   `gorm:"size:16" json:"credit_grade"`
	Decision           scoring.Decision `gorm:"size:32" json:"decision"`
	Recommendation     string           `gorm:"size:128" json:"recommendation"`
	Confidence         float64          `gorm:"type:decimal(5,4)" json:"confidence"`

	Status          Status     `gorm:"size:16;default:'pending'" json:"status"`
	AmountRemaining float64    `gorm:"type:decimal(18,2)" json:"amount_remaining"`
	NextPaymentDate *time.Time `json:"next_payment_date,omitempty"`

	Schedule []Installment `gorm:"foreignKey:LoanRef;references:ID" json:"payment_schedule,omitempty"`

	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	ActivatedAt     *time.Time `json:"activated_at,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

func (Loan) TableName() string { return "loans" }

// Installment is one row of a loan's amortization schedule. Rows are
// written once at submission; the only mutation allowed afterwards is
// marking a row paid.
type Installment struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanRef uint64 `gorm:"column:loan_ref;index:idx_installments_loan" json:"-"`

	Month          int               `json:"month"`
	DueDate        time.Time         `json:"due_date"`
	AmountDue      float64           `gorm:"type:decimal(18,2)" json:"amount_due"`
	Principal      float64           `gorm:"type:decimal(18,2)" json:"principal"`
	Interest       float64           `gorm:"type:decimal(18,2)" json:"interest"`
	RemainingAfter float64           `gorm:"type:decimal(18,2)" json:"remaining_balance_after"`
	Status         InstallmentStatus `gorm:"size:16;default:'pending'" json:"status"`
	PaidDate       *time.Time        `json:"paid_date,omitempty"`
	AmountPaid     float64           `gorm:"type:decimal(18,2)" json:"amount_paid,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "installments" }

// Payment is an append-only repayment record; rows are never mutated
// after creation.
type Payment struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string    `gorm:"size:36;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID    string    `gorm:"size:36;index:idx_payments_loan" json:"loan_id"`
	Amount    float64   `gorm:"type:decimal(18,2)" json:"amount"`

	PaymentDate time.Time `json:"payment_date"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `gorm:"size:16;default:'paid'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
