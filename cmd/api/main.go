package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpadp "loan-portal/internal/adapter/http"
	"loan-portal/internal/adapter/repository/mysql"
	"loan-portal/internal/config"
	"loan-portal/internal/infrastructure/cache"
	"loan-portal/internal/infrastructure/db"
	"loan-portal/internal/infrastructure/events"
	"loan-portal/internal/infrastructure/logger"
	"loan-portal/internal/scheduler"
	"loan-portal/internal/usecase/approval"
	"loan-portal/internal/usecase/creditscore"
	"loan-portal/internal/usecase/loan"
	"loan-portal/internal/usecase/notification"
	"loan-portal/internal/usecase/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("application terminated with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	bus := events.NewBus(rdb, log)
	tx := mysql.NewGormUoW(gdb)
	loans := mysql.NewLoanRepository(gdb)
	txs := mysql.NewTransactionRepository(gdb)

	notes := notification.NewUsecase(mysql.NewNotificationRepository(gdb), bus, log)
	scores := creditscore.NewUsecase(tx, mysql.NewCreditScoreRepository(gdb), loans, txs, cfg.CreditParams(), log)
	loanUC := loan.NewUsecase(loans, log)
	approvals := approval.NewUsecase(tx, notes, bus, log)
	payments := payment.NewUsecase(tx, loans, txs, notes, scores, log,
		payment.WithPublisher(bus),
		payment.WithMaxRetries(cfg.PaymentMaxRetries),
	)

	sched, err := scheduler.New(scores, scheduler.Specs{
		LateFlag:    cfg.LateFlagSchedule,
		LatePenalty: cfg.LatePenaltySchedule,
	}, log)
	if err != nil {
		return err
	}

	e := httpadp.NewServer(httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return cache.Ping(ctx, rdb) },
		}),
		Calculator:    httpadp.NewCalculatorHandler(log),
		Loans:         httpadp.NewLoanHandler(loanUC, log),
		Approvals:     httpadp.NewApprovalHandler(approvals, log),
		Payments:      httpadp.NewPaymentHandler(payments, log),
		Scores:        httpadp.NewCreditScoreHandler(scores, log),
		Notifications: httpadp.NewNotificationHandler(notes, log),
		Events:        httpadp.NewEventsHandler(bus, log),
	}, httpadp.RouterConfig{
		JWTSecret:      []byte(cfg.JWTSecret),
		Redis:          rdb,
		IdempotencyTTL: time.Duration(cfg.IdempTTLSecs) * time.Second,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return sched.Stop(stopCtx)
	})

	g.Go(func() error {
		log.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
