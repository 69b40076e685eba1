package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "loan-refinance/internal/adapter/http"
	"loan-refinance/internal/adapter/middleware"
	"loan-refinance/internal/adapter/repository/mysql"
	"loan-refinance/internal/config"
	"loan-refinance/internal/infrastructure/cache"
	"loan-refinance/internal/infrastructure/db"
	"loan-refinance/internal/infrastructure/logger"
	ucAccount "loan-refinance/internal/usecase/account"
	ucLoan "loan-refinance/internal/usecase/loan"
	"loan-refinance/internal/usecase/refinance"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.Log.Env, cfg.Log.Level, cfg.Log.Service)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), cfg.Log.DBLevel)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	refOpts, err := refinanceOptions(cfg.Refinance)
	if err != nil {
		return err
	}

	// repositories & usecases
	loans := mysql.NewLoanRepository(gdb)
	offers := mysql.NewOfferRepository(gdb)
	accounts := mysql.NewAccountRepository(gdb, cfg.Refinance.Currency)
	ops := mysql.NewOperationRepository(gdb)
	tx := mysql.NewGormUoW(gdb, cfg.Refinance.Currency)
	lk := newLocker(cfg.Lock, rdb, log)
	builder := refinance.NewBuilder(cfg.Refinance.LoanPrefix, cfg.Refinance.StandardLoanPrefix, cfg.Refinance.QuotaScale)

	refUC := refinance.NewUsecase(ops, tx, lk, builder, refOpts, log.Named("refinance"))
	loanUC := ucLoan.NewUsecase(loans, offers, tx, lk, builder, log.Named("loan"))
	accUC := ucAccount.NewUsecase(accounts)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), requestLogger(log))

	idem := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log.Named("idempotency"))
	httpadp.Router{
		Health:    httpadp.NewHandler(cfg.Log.Service),
		Refinance: httpadp.NewRefinanceHandler(refUC, log),
		Loans:     httpadp.NewLoanHandler(loanUC, log),
		Accounts:  httpadp.NewAccountHandler(accUC, log),
	}.Register(e, idem)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr), zap.String("lock_backend", cfg.Lock.Backend))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", c.Request().Header.Get(middleware.HeaderRequestID)),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
