package storemock

import (
	"context"
	"sync"

	"adaptive-lending/internal/domain/bank"
	"adaptive-lending/internal/domain/borrower"
	"adaptive-lending/internal/domain/loan"
	"adaptive-lending/internal/domain/loanpackage"
	"adaptive-lending/internal/domain/uow"
)

// Ensure compile-time compliance.
var (
	_ uow.UnitOfWork         = (*Store)(nil)
	_ loan.Repository        = (*loanRepo)(nil)
	_ loan.PaymentRepository = (*paymentRepo)(nil)
	_ borrower.Repository    = (*borrowerRepo)(nil)
	_ bank.Repository        = (*bankRepo)(nil)
	_ loanpackage.Repository = (*packageRepo)(nil)
)

// Store is an in-memory ledger for usecase tests. WithinLoanTx serializes
// on a mutex the way the real unit of work serializes on the row lock, so
// concurrent callers observe one-at-a-time semantics.
type Store struct {
	mu sync.Mutex

	loans     map[string]*loan.Loan
	payments  []loan.Payment
	borrowers map[string]*borrower.Borrower
	banks     map[string]*bank.Bank
	packages  map[string]*loanpackage.Package

	nextID uint64

	// TxErrs is a FIFO of errors returned by the next WithinTx /
	// WithinLoanTx calls before fn runs; nil entries mean "run normally".
	TxErrs []error
}

func New() *Store {
	return &Store{
		loans:     map[string]*loan.Loan{},
		borrowers: map[string]*borrower.Borrower{},
		banks:     map[string]*bank.Bank{},
		packages:  map[string]*loanpackage.Package{},
	}
}

func (s *Store) repos() uow.Repos {
	return uow.Repos{
		Loans:     &loanRepo{s: s},
		Payments:  &paymentRepo{s: s},
		Borrowers: &borrowerRepo{s: s},
		Banks:     &bankRepo{s: s},
		Packages:  &packageRepo{s: s},
	}
}

func (s *Store) popTxErr() error {
	if len(s.TxErrs) == 0 {
		return nil
	}
	err := s.TxErrs[0]
	s.TxErrs = s.TxErrs[1:]
	return err
}

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.popTxErr(); err != nil {
		return err
	}
	return fn(s.repos())
}

func (s *Store) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.popTxErr(); err != nil {
		return err
	}
	r := s.repos()
	l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(r, l)
}

// Seed helpers (lock-free; call before the code under test runs).

func (s *Store) SeedBorrower(b *borrower.Borrower) { s.borrowers[b.BorrowerID] = cloneBorrower(b) }
func (s *Store) SeedBank(b *bank.Bank)             { s.banks[b.BankID] = cloneBank(b) }
func (s *Store) SeedLoan(l *loan.Loan)             { s.seedLoan(l) }
func (s *Store) SeedPackage(p *loanpackage.Package) {
	s.packages[p.PackageID] = clonePackage(p)
}

func (s *Store) seedLoan(l *loan.Loan) {
	c := cloneLoan(l)
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	}
	for i := range c.Schedule {
		if c.Schedule[i].ID == 0 {
			s.nextID++
			c.Schedule[i].ID = s.nextID
		}
		c.Schedule[i].LoanRef = c.ID
	}
	s.loans[c.LoanID] = c
}

// Inspection helpers for assertions.

func (s *Store) Loan(loanID string) *loan.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.loans[loanID]; ok {
		return cloneLoan(l)
	}
	return nil
}

func (s *Store) Borrower(borrowerID string) *borrower.Borrower {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.borrowers[borrowerID]; ok {
		return cloneBorrower(b)
	}
	return nil
}

func (s *Store) Bank(bankID string) *bank.Bank {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.banks[bankID]; ok {
		return cloneBank(b)
	}
	return nil
}

func (s *Store) Package(packageID string) *loanpackage.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.packages[packageID]; ok {
		return clonePackage(p)
	}
	return nil
}

func (s *Store) Payments(loanID string) []loan.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []loan.Payment
	for _, p := range s.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out
}

// ---- repositories ----

type loanRepo struct{ s *Store }

func (r *loanRepo) Create(ctx context.Context, l *loan.Loan) error {
	if _, exists := r.s.loans[l.LoanID]; exists {
		return loan.ErrStoreConflict
	}
	r.s.seedLoan(l)
	l.ID = r.s.loans[l.LoanID].ID
	return nil
}

func (r *loanRepo) GetByLoanID(ctx context.Context, loanID string) (*loan.Loan, error) {
	l, ok := r.s.loans[loanID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	return cloneLoan(l), nil
}

func (r *loanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	return r.GetByLoanID(ctx, loanID)
}

func (r *loanRepo) Save(ctx context.Context, l *loan.Loan) error {
	if _, ok := r.s.loans[l.LoanID]; !ok {
		return loan.ErrNotFound
	}
	c := cloneLoan(l)
	// Save never touches schedule rows; keep the stored ones.
	c.Schedule = r.s.loans[l.LoanID].Schedule
	r.s.loans[l.LoanID] = c
	return nil
}

func (r *loanRepo) ListByBorrower(ctx context.Context, borrowerID string) ([]loan.Loan, error) {
	var out []loan.Loan
	for _, l := range r.s.loans {
		if l.BorrowerID == borrowerID {
			out = append(out, *cloneLoan(l))
		}
	}
	return out, nil
}

func (r *loanRepo) ListByStatus(ctx context.Context, status loan.Status) ([]loan.Loan, error) {
	var out []loan.Loan
	for _, l := range r.s.loans {
		if l.Status == status {
			out = append(out, *cloneLoan(l))
		}
	}
	return out, nil
}

func (r *loanRepo) ListByBank(ctx context.Context, bankID string) ([]loan.Loan, error) {
	var out []loan.Loan
	for _, l := range r.s.loans {
		if l.BankID == bankID {
			out = append(out, *cloneLoan(l))
		}
	}
	return out, nil
}

func (r *loanRepo) MarkInstallmentPaid(ctx context.Context, inst *loan.Installment) error {
	for _, l := range r.s.loans {
		for i := range l.Schedule {
			if l.Schedule[i].ID == inst.ID {
				l.Schedule[i] = *inst
				return nil
			}
		}
	}
	return loan.ErrNotFound
}

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(ctx context.Context, p *loan.Payment) error {
	r.s.nextID++
	p.ID = r.s.nextID
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r *paymentRepo) ListByLoan(ctx context.Context, loanID string) ([]loan.Payment, error) {
	var out []loan.Payment
	for _, p := range r.s.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out, nil
}

type borrowerRepo struct{ s *Store }

func (r *borrowerRepo) Create(ctx context.Context, b *borrower.Borrower) error {
	if _, exists := r.s.borrowers[b.BorrowerID]; exists {
		return loan.ErrStoreConflict
	}
	r.s.borrowers[b.BorrowerID] = cloneBorrower(b)
	return nil
}

func (r *borrowerRepo) GetByBorrowerID(ctx context.Context, borrowerID string) (*borrower.Borrower, error) {
	b, ok := r.s.borrowers[borrowerID]
	if !ok {
		return nil, borrower.ErrNotFound
	}
	return cloneBorrower(b), nil
}

func (r *borrowerRepo) GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*borrower.Borrower, error) {
	return r.GetByBorrowerID(ctx, borrowerID)
}

func (r *borrowerRepo) Save(ctx context.Context, b *borrower.Borrower) error {
	if _, ok := r.s.borrowers[b.BorrowerID]; !ok {
		return borrower.ErrNotFound
	}
	r.s.borrowers[b.BorrowerID] = cloneBorrower(b)
	return nil
}

type bankRepo struct{ s *Store }

func (r *bankRepo) Create(ctx context.Context, b *bank.Bank) error {
	if _, exists := r.s.banks[b.BankID]; exists {
		return loan.ErrStoreConflict
	}
	r.s.banks[b.BankID] = cloneBank(b)
	return nil
}

func (r *bankRepo) GetByBankID(ctx context.Context, bankID string) (*bank.Bank, error) {
	b, ok := r.s.banks[bankID]
	if !ok {
		return nil, bank.ErrNotFound
	}
	return cloneBank(b), nil
}

func (r *bankRepo) GetByBankIDForUpdate(ctx context.Context, bankID string) (*bank.Bank, error) {
	return r.GetByBankID(ctx, bankID)
}

func (r *bankRepo) Save(ctx context.Context, b *bank.Bank) error {
	if _, ok := r.s.banks[b.BankID]; !ok {
		return bank.ErrNotFound
	}
	r.s.banks[b.BankID] = cloneBank(b)
	return nil
}

type packageRepo struct{ s *Store }

func (r *packageRepo) Create(ctx context.Context, p *loanpackage.Package) error {
	if _, exists := r.s.packages[p.PackageID]; exists {
		return loan.ErrStoreConflict
	}
	r.s.packages[p.PackageID] = clonePackage(p)
	return nil
}

func (r *packageRepo) GetByPackageID(ctx context.Context, packageID string) (*loanpackage.Package, error) {
	p, ok := r.s.packages[packageID]
	if !ok {
		return nil, loanpackage.ErrNotFound
	}
	return clonePackage(p), nil
}

func (r *packageRepo) ListActive(ctx context.Context) ([]loanpackage.Package, error) {
	var out []loanpackage.Package
	for _, p := range r.s.packages {
		if p.IsActive {
			out = append(out, *clonePackage(p))
		}
	}
	return out, nil
}

func (r *packageRepo) ListActiveByBank(ctx context.Context, bankID string) ([]loanpackage.Package, error) {
	var out []loanpackage.Package
	for _, p := range r.s.packages {
		if p.IsActive && p.BankID == bankID {
			out = append(out, *clonePackage(p))
		}
	}
	return out, nil
}

func (r *packageRepo) Save(ctx context.Context, p *loanpackage.Package) error {
	if _, ok := r.s.packages[p.PackageID]; !ok {
		return loanpackage.ErrNotFound
	}
	r.s.packages[p.PackageID] = clonePackage(p)
	return nil
}

// ---- clone helpers ----

func cloneLoan(l *loan.Loan) *loan.Loan {
	c := *l
	c.Schedule = make([]loan.Installment, len(l.Schedule))
	copy(c.Schedule, l.Schedule)
	if l.NextPaymentDate != nil {
		t := *l.NextPaymentDate
		c.NextPaymentDate = &t
	}
	if l.ActivatedAt != nil {
		t := *l.ActivatedAt
		c.ActivatedAt = &t
	}
	if l.PaidAt != nil {
		t := *l.PaidAt
		c.PaidAt = &t
	}
	return &c
}

func cloneBorrower(b *borrower.Borrower) *borrower.Borrower { c := *b; return &c }
func cloneBank(b *bank.Bank) *bank.Bank                     { c := *b; return &c }
func clonePackage(p *loanpackage.Package) *loanpackage.Package {
	c := *p
	return &c
}
