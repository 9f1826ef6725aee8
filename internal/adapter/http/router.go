package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	mw "loan-portal/internal/adapter/middleware"
)

type Handlers struct {
	Health        *Handler
	Calculator    *CalculatorHandler
	Loans         *LoanHandler
	Approvals     *ApprovalHandler
	Payments      *PaymentHandler
	Scores        *CreditScoreHandler
	Notifications *NotificationHandler
	Events        *EventsHandler
}

type RouterConfig struct {
	JWTSecret      []byte
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	RequestTimeout time.Duration
	Log            *zap.Logger
}

// NewServer builds the echo instance with every route registered.
func NewServer(h Handlers, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(cfg.Log)
	e.Use(mw.RequestID(), echomw.Recover(), mw.RequestLogger(cfg.Log))

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	timeout := echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "request timed out"})
			}
			return err
		},
	})

	e.GET("/health", h.Health.Health)

	pub := e.Group("", timeout)
	pub.POST("/calculator/emi", h.Calculator.EMI)
	pub.POST("/calculator/schedule", h.Calculator.Schedule)
	pub.GET("/products", h.Calculator.Products)

	auth := mw.Authenticate(cfg.JWTSecret)

	// streams are long-lived and must not inherit the request timeout
	e.GET("/events", h.Events.Stream, auth)
	e.GET("/events/ws", h.Events.Socket, auth)

	api := e.Group("", auth, timeout)
	api.POST("/loans", h.Loans.Submit)
	api.GET("/loans", h.Loans.ListMine)
	api.GET("/loans/:loan_id", h.Loans.Get)
	api.POST("/loans/:loan_id/payments", h.Payments.Pay, mw.Idempotency(cfg.Redis, cfg.IdempotencyTTL, cfg.Log))
	api.GET("/loans/:loan_id/transactions", h.Payments.LoanTransactions)
	api.GET("/transactions", h.Payments.ListMine)
	api.GET("/credit-score", h.Scores.Get)
	api.POST("/credit-score/recompute", h.Scores.Recompute)
	api.GET("/notifications", h.Notifications.List)
	api.POST("/notifications/:notification_id/read", h.Notifications.MarkRead)
	api.POST("/notifications/read-all", h.Notifications.MarkAllRead)

	staff := api.Group("/staff", mw.RequireStaff)
	staff.GET("/loans", h.Loans.ListForReview)
	staff.POST("/loans/:loan_id/approve", h.Approvals.Approve)
	staff.POST("/loans/:loan_id/reject", h.Approvals.Reject)
	staff.GET("/loans/:loan_id/reconcile", h.Payments.Reconcile)
	staff.GET("/reports", h.Loans.Report)

	return e
}
