package bank

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("bank not found")

// Bank is the ledger record for a lending institution. The counters are
// best-effort followers of loan-side transitions: the loan row is the
// source of truth and counter updates may be retried.
type Bank struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	BankID string `gorm:"size:36;uniqueIndex:ux_banks_bank_id" json:"bank_id"`
	Name   string `gorm:"size:128" json:"bank_name"`

	MaxDTIThreshold      float64 `gorm:"type:decimal(5,4);default:0.45" json:"max_dti_threshold"`
	LoansApproved        int     `json:"total_loans_approved"`
	LoansRejected        int     `json:"total_loans_rejected"`
	LoansUnderManagement int     `json:"total_loans_under_management"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bank) TableName() string { return "banks" }

func (b *Bank) RecordApproval() {
	b.LoansApproved++
	b.LoansUnderManagement++
}

func (b *Bank) RecordRejection() {
	b.LoansRejected++
}

// RecordClosure releases a loan from management when it reaches a
// terminal state.
func (b *Bank) RecordClosure() {
	if b.LoansUnderManagement > 0 {
		b.LoansUnderManagement--
	}
}
