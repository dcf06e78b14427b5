package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "adaptive-lending/internal/adapter/http"
	appmw "adaptive-lending/internal/adapter/middleware"
	"adaptive-lending/internal/adapter/repository/mysql"
	"adaptive-lending/internal/config"
	bankDomain "adaptive-lending/internal/domain/bank"
	borrowerDomain "adaptive-lending/internal/domain/borrower"
	loanDomain "adaptive-lending/internal/domain/loan"
	packageDomain "adaptive-lending/internal/domain/loanpackage"
	"adaptive-lending/internal/domain/risk"
	"adaptive-lending/internal/infrastructure/cache"
	"adaptive-lending/internal/infrastructure/db"
	"adaptive-lending/internal/usecase/account"
	"adaptive-lending/internal/usecase/analytics"
	"adaptive-lending/internal/usecase/application"
	"adaptive-lending/internal/usecase/lifecycle"
	packageUC "adaptive-lending/internal/usecase/loanpackage"
	"adaptive-lending/internal/usecase/repayment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&loanDomain.Loan{}, &loanDomain.Installment{}, &loanDomain.Payment{},
		&borrowerDomain.Borrower{}, &bankDomain.Bank{}, &packageDomain.Package{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	uow := mysql.NewGormUoW(gdb)
	model := risk.DefaultLogisticModel()

	appUC := application.NewUsecase(uow, model)
	lifecycleUC := lifecycle.NewUsecase(uow)
	repayUC := repayment.NewUsecase(uow)
	accountUC := account.NewUsecase(uow)
	catalogUC := packageUC.NewUsecase(uow)
	analyticsUC := analytics.NewUsecase(uow,
		cache.NewRedisCache(rdb),
		time.Duration(cfg.DashboardTTLSecs)*time.Second)

	h := httpadp.NewHandler()
	loans := httpadp.NewLoanHandler(appUC, repayUC)
	banks := httpadp.NewBankHandler(lifecycleUC, analyticsUC)
	packages := httpadp.NewPackageHandler(catalogUC)
	accounts := httpadp.NewAccountHandler(accountUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/customers/register", accounts.RegisterBorrower)
	e.GET("/customers/:borrower_id", accounts.Profile)
	e.POST("/customers/:borrower_id/loans", loans.Apply)
	e.POST("/customers/:borrower_id/loans/package", loans.ApplyPackage)
	e.GET("/customers/:borrower_id/loans", loans.ListBorrowerLoans)

	e.GET("/loans/:loan_id", loans.GetLoan)
	e.POST("/loans/:loan_id/repay", loans.Repay)
	e.GET("/loans/:loan_id/payments", loans.PaymentHistory)

	e.POST("/banks/register", accounts.RegisterBank)
	e.GET("/banks/loans/pending", banks.ListPending)
	e.POST("/banks/:bank_id/loans/:loan_id/approve", banks.Approve)
	e.POST("/banks/:bank_id/loans/:loan_id/reject", banks.Reject)
	e.POST("/banks/:bank_id/loans/:loan_id/activate", banks.Activate)
	e.GET("/banks/:bank_id/loans", banks.BankLoans)
	e.GET("/banks/:bank_id/dashboard", banks.Dashboard)

	e.GET("/packages", packages.List)
	e.GET("/packages/:package_id", packages.Get)
	e.POST("/banks/:bank_id/packages", packages.Create)
	e.GET("/banks/:bank_id/packages", packages.List)
	e.PUT("/banks/:bank_id/packages/:package_id", packages.Update)
	e.DELETE("/banks/:bank_id/packages/:package_id", packages.Deactivate)

	e.POST("/admin/loans/:loan_id/default", banks.MarkDefaulted)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
