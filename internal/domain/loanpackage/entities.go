package loanpackage

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("loan package not found")
	ErrInactive   = errors.New("loan package is not active")
	ErrIneligible = errors.New("applicant does not meet the package minimum credit score")
)

// Package is a pre-defined loan offer published by a bank. Deletion is a
// soft deactivation; historical loans keep referencing the package id.
type Package struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PackageID string `gorm:"size:36;uniqueIndex:ux_packages_package_id" json:"package_id"`
	BankID    string `gorm:"size:36;index:idx_packages_bank" json:"bank_id"`

	Name               string  `gorm:"size:128" json:"name"`
	Amount             float64 `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate       float64 `gorm:"type:decimal(6,3)" json:"interest_rate"`
	LoanTermMonths     int     `json:"loan_term_months"`
	MinimumCreditScore float64 `gorm:"type:decimal(6,2)" json:"minimum_credit_score"`
	Description        string  `gorm:"type:text" json:"description"`
	IsActive           bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Package) TableName() string { return "loan_packages" }

// EligibilityCheck is the single package-eligibility rule: the package
// must be active and the applicant's score must clear the minimum.
func (p *Package) EligibilityCheck(creditScore float64) error {
	if !p.IsActive {
		return ErrInactive
	}
	if creditScore < p.MinimumCreditScore {
		return ErrIneligible
	}
	return nil
}
