package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	domainLoan "adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/domain/uow"
)

// Cache is the dashboard result cache. A nil cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Usecase aggregates a bank's portfolio for the dashboard. Read-only:
// it never mutates ledger records, so results may be cached.
type Usecase struct {
	uow      uow.UnitOfWork
	cache    Cache
	cacheTTL time.Duration
}

func NewUsecase(tx uow.UnitOfWork, cache Cache, cacheTTL time.Duration) *Usecase {
	return &Usecase{uow: tx, cache: cache, cacheTTL: cacheTTL}
}

type Dashboard struct {
	BankID              string         `json:"bank_id"`
	Period              string         `json:"period"`
	TotalLoansProcessed int            `json:"total_loans_processed"`
	ApprovalRate        float64        `json:"approval_rate"`
	DefaultRate         float64        `json:"default_rate"`
	AverageLoanAmount   float64        `json:"average_loan_amount"`
	TotalPortfolioValue float64        `json:"total_portfolio_value"`
	OutstandingBalance  float64        `json:"outstanding_balance"`
	RiskDistribution    map[string]int `json:"risk_distribution"`
}

// periodStart maps the period label onto a cutoff; unknown labels fall
// back to 30 days.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "7d":
		return now.AddDate(0, 0, -7)
	case "90d":
		return now.AddDate(0, 0, -90)
	case "1y":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// BankDashboard computes the aggregate view of one bank's book over the
// period ("7d", "30d", "90d", "1y").
func (u *Usecase) BankDashboard(ctx context.Context, bankID, period string) (*Dashboard, error) {
	key := "dashboard:" + bankID + ":" + period
	if u.cache != nil {
		if raw, err := u.cache.Get(ctx, key); err == nil && len(raw) > 0 {
			var cached Dashboard
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	now := time.Now().UTC()
	start := periodStart(period, now)

	var loans []domainLoan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		all, err := r.Loans.ListByBank(ctx, bankID)
		if err != nil {
			return err
		}
		loans = all
		return nil
	})
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		BankID:           bankID,
		Period:           period,
		RiskDistribution: map[string]int{},
	}

	var approved, defaulted int
	var amounts float64
	for i := range loans {
		l := &loans[i]
		if l.CreatedAt.Before(start) {
			continue
		}
		d.TotalLoansProcessed++
		amounts += l.TotalAmount
		d.RiskDistribution[string(l.GradeAtApplication)]++

		switch l.Status {
		case domainLoan.StatusApproved, domainLoan.StatusActive, domainLoan.StatusPaid:
			approved++
		case domainLoan.StatusDefaulted:
			approved++
			defaulted++
		}
		if !l.Status.Terminal() {
			d.OutstandingBalance += l.AmountRemaining
		}
	}

	if d.TotalLoansProcessed > 0 {
		d.ApprovalRate = float64(approved) / float64(d.TotalLoansProcessed) * 100
		d.AverageLoanAmount = amounts / float64(d.TotalLoansProcessed)
		d.TotalPortfolioValue = amounts
	}
	if approved > 0 {
		d.DefaultRate = float64(defaulted) / float64(approved) * 100
	}

	if u.cache != nil {
		raw, err := json.Marshal(d)
		if err == nil {
			if err := u.cache.Set(ctx, key, raw, u.cacheTTL); err != nil {
				log.Printf("analytics: dashboard cache write failed: %v", err)
			}
		}
	}
	return d, nil
}
