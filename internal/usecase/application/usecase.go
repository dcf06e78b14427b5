package application

import (
	"context"
	"fmt"
	"time"

	domainBorrower "adaptive-lending/internal/domain/borrower"
	domainLoan "adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/domain/risk"
	"adaptive-lending/internal/domain/scoring"
	"adaptive-lending/internal/domain/uow"
	"adaptive-lending/pkg/id"
)

// Usecase originates loans: it validates the application, scores default
// risk, renders the decision, generates the amortization schedule and
// creates the loan in pending state.
type Usecase struct {
	uow   uow.UnitOfWork
	model risk.Model
}

func NewUsecase(tx uow.UnitOfWork, model risk.Model) *Usecase {
	return &Usecase{uow: tx, model: model}
}

// firstPaymentDelay is the gap between submission and the first scheduled
// due date.
const firstPaymentDelay = 30 * 24 * time.Hour

type LoanDTO struct {
	LoanID             string                   `json:"loan_id"`
	BorrowerID         string                   `json:"borrower_id"`
	BankID             string                   `json:"bank_id,omitempty"`
	Status             string                   `json:"status"`
	Decision           string                   `json:"decision"`
	Recommendation     string                   `json:"recommendation"`
	Confidence         float64                  `json:"confidence"`
	DefaultProbability float64                  `json:"default_probability"`
	CreditGrade        string                   `json:"credit_grade"`
	TotalAmount        float64                  `json:"total_amount"`
	AmountRemaining    float64                  `json:"amount_remaining"`
	InterestRate       float64                  `json:"interest_rate"`
	TermMonths         int                      `json:"term_months"`
	Purpose            string                   `json:"purpose"`
	PackageID          string                   `json:"package_id,omitempty"`
	PaymentSchedule    []domainLoan.Installment `json:"payment_schedule,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
}

func toDTO(l *domainLoan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:             l.LoanID,
		BorrowerID:         l.BorrowerID,
		BankID:             l.BankID,
		Status:             string(l.Status),
		Decision:           string(l.Decision),
		Recommendation:     l.Recommendation,
		Confidence:         l.Confidence,
		DefaultProbability: l.DefaultProbability,
		CreditGrade:        string(l.GradeAtApplication),
		TotalAmount:        l.TotalAmount,
		AmountRemaining:    l.AmountRemaining,
		InterestRate:       l.InterestRate,
		TermMonths:         l.TermMonths,
		Purpose:            l.Purpose,
		PackageID:          l.PackageID,
		PaymentSchedule:    l.Schedule,
		CreatedAt:          l.CreatedAt,
	}
}

// Submit runs the full origination pipeline for a custom application.
func (u *Usecase) Submit(ctx context.Context, borrowerID string, app domainLoan.Application) (*LoanDTO, error) {
	app = app.Normalized()
	if err := app.Validate(); err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err := uow.RetryConflict(uow.DefaultConflictRetries, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, borrowerID)
			if err != nil {
				return err
			}
			l, err := u.originate(ctx, r, b, app, "")
			if err != nil {
				return err
			}
			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// SubmitWithPackage originates from a pre-defined package: the package
// terms replace the custom loan terms and the borrower profile supplies
// the applicant features. The package minimum-score eligibility check
// runs before any scoring.
func (u *Usecase) SubmitWithPackage(ctx context.Context, borrowerID, packageID, purpose string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := uow.RetryConflict(uow.DefaultConflictRetries, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			pkg, err := r.Packages.GetByPackageID(ctx, packageID)
			if err != nil {
				return err
			}
			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, borrowerID)
			if err != nil {
				return err
			}
			if err := pkg.EligibilityCheck(b.CreditScore); err != nil {
				return err
			}

			app := domainLoan.Application{
				Income:         b.Income,
				InterestRate:   pkg.InterestRate,
				LoanAmount:     pkg.Amount,
				Age:            b.Age,
				CreditScore:    b.CreditScore,
				MonthsEmployed: b.MonthsEmployed,
				DTIRatio:       b.CurrentDTI,
				LoanTermMonths: pkg.LoanTermMonths,
				Purpose:        purpose,
			}.Normalized()
			if err := app.Validate(); err != nil {
				return err
			}

			l, err := u.originate(ctx, r, b, app, pkg.PackageID)
			if err != nil {
				return err
			}
			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// originate scores, decides and creates the pending loan; the default
// probability and decision are computed exactly once, here.
func (u *Usecase) originate(ctx context.Context, r uow.Repos, b *domainBorrower.Borrower, app domainLoan.Application, packageID string) (*domainLoan.Loan, error) {
	p, err := u.model.Predict(risk.Features{
		Income:         app.Income,
		InterestRate:   app.InterestRate,
		LoanAmount:     app.LoanAmount,
		Age:            float64(app.Age),
		CreditScore:    app.CreditScore,
		MonthsEmployed: float64(app.MonthsEmployed),
		DTIRatio:       app.DTIRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("risk model: %w", err)
	}

	result := scoring.Decide(p, app.CreditScore)
	now := time.Now().UTC()
	firstDue := now.Add(firstPaymentDelay)

	l := &domainLoan.Loan{
		LoanID:     id.NewUUID(),
		BorrowerID: b.BorrowerID,

		Income:         app.Income,
		InterestRate:   app.InterestRate,
		TotalAmount:    app.LoanAmount,
		Age:            app.Age,
		MonthsEmployed: app.MonthsEmployed,
		DTIRatio:       app.DTIRatio,
		TermMonths:     app.LoanTermMonths,
		Purpose:        app.Purpose,
		PackageID:      packageID,

		DefaultProbability: p,
		ScoreAtApplication: app.CreditScore,
		GradeAtApplication: result.CreditGrade,
		Decision:           result.Decision,
		Recommendation:     result.Recommendation,
		Confidence:         result.Confidence,

		Status:          domainLoan.StatusPending,
		AmountRemaining: app.LoanAmount,
		Schedule:        domainLoan.GenerateSchedule(app.LoanAmount, app.InterestRate, app.LoanTermMonths, firstDue),
		StatusUpdatedAt: now,
	}

	if err := r.Loans.Create(ctx, l); err != nil {
		return nil, err
	}

	// The applicant's score moves with every scored application.
	b.CreditScore = scoring.ScoreCredit(p, b.CreditScore)
	b.AppendLoan(l.LoanID)
	if err := r.Borrowers.Save(ctx, b); err != nil {
		return nil, err
	}
	return l, nil
}

// Get returns one loan with its schedule.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListByBorrower returns all of a borrower's loans.
func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	var out []LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.ListByBorrower(ctx, borrowerID)
		if err != nil {
			return err
		}
		for i := range loans {
			out = append(out, *toDTO(&loans[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
