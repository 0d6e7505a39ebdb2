package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "peerlend-backend/internal/adapter/http"
	"peerlend-backend/internal/adapter/middleware"
	profileadp "peerlend-backend/internal/adapter/profile"
	"peerlend-backend/internal/adapter/repository/mysql"
	"peerlend-backend/internal/config"
	"peerlend-backend/internal/domain/agreement"
	"peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/payment"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/infrastructure/db"
	"peerlend-backend/internal/usecase/ledger"
	"peerlend-backend/internal/usecase/offer"
	"peerlend-backend/internal/usecase/reconcile"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&loan.Loan{}, &agreement.Agreement{}, &payment.Payment{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loans := mysql.NewLoanRepository(gdb)
	agreements := mysql.NewAgreementRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	profiles := profileadp.NewHTTPDirectory(cfg.ProfileBaseURL)

	offers := offer.NewUsecase(tx, profiles, cfg.MaxRatePercent)
	recon := reconcile.NewUsecase(tx)
	views := ledger.NewUsecase(loans, agreements, payments, profiles)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(offers, views)
	paymentH := httpadp.NewPaymentHandler(recon)
	ledgerH := httpadp.NewLedgerHandler(views)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.POST("/loans", loanH.CreateOffer)
	e.GET("/loans/:loan_id", loanH.Statement)
	e.POST("/loans/:loan_id/sign", loanH.Sign)
	e.POST("/loans/:loan_id/decline", loanH.Decline)
	e.DELETE("/loans/:loan_id", loanH.Remove)
	e.GET("/loans/:loan_id/paylink", loanH.Paylink)

	e.POST("/loans/:loan_id/payments", paymentH.RecordPayment)
	e.POST("/payments/:payment_id/confirm", paymentH.Confirm)
	e.POST("/payments/:payment_id/deny", paymentH.Deny)
	e.DELETE("/payments/:payment_id", paymentH.CancelPending)

	e.GET("/ledger", ledgerH.Dashboard)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
