// Package app wires configuration, storage, services, and transport together
// and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/taxnation/crm-backend/internal/adapter/postgres"
	auditrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/audit"
	recordrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/record"
	tokenrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/token"
	userrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/user"
	"github.com/taxnation/crm-backend/internal/adapter/razorpay"
	"github.com/taxnation/crm-backend/internal/auth"
	"github.com/taxnation/crm-backend/internal/config"
	authsvc "github.com/taxnation/crm-backend/internal/service/auth"
	"github.com/taxnation/crm-backend/internal/service/booking"
	"github.com/taxnation/crm-backend/internal/service/employee"
	"github.com/taxnation/crm-backend/internal/service/invoice"
	"github.com/taxnation/crm-backend/internal/service/lead"
	"github.com/taxnation/crm-backend/internal/service/payment"
	usersvc "github.com/taxnation/crm-backend/internal/service/user"
	"github.com/taxnation/crm-backend/internal/transport/rest"
)

// Run starts the application and blocks until ctx is cancelled or the HTTP
// server fails. Schema migrations are applied out of band with the goose CLI
// before the server starts.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	records := recordrepo.New(pool)
	audits := auditrepo.New(pool)
	tokens := tokenrepo.New(pool)
	users := userrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var gateway payment.Gateway
	if cfg.Payment.Enabled() {
		gateway = razorpay.NewClient(cfg.Payment, logger)
	} else {
		logger.Warn("payment gateway credentials not configured, link creation disabled")
	}

	authService := authsvc.NewService(logger, users, tokens, jwtManager, cfg.Auth)
	userService := usersvc.NewService(logger, users, tokens)
	bookingService := booking.NewService(logger, records, audits, txManager)
	leadService := lead.NewService(logger, records, audits, txManager)
	invoiceService := invoice.NewService(logger, records, audits, txManager)
	employeeService := employee.NewService(logger, records, audits, txManager)
	paymentService := payment.NewService(logger, gateway, records, audits, txManager)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handlers := rest.Handlers{
		Auth:      rest.NewAuthHandler(authService, logger),
		Users:     rest.NewUserHandler(userService, logger),
		Bookings:  rest.NewRecordHandler(bookingService, "booking", logger),
		Leads:     rest.NewRecordHandler(leadService, "lead", logger),
		Invoices:  rest.NewRecordHandler(invoiceService, "invoice", logger),
		Employees: rest.NewEmployeeHandler(employeeService, logger),
		Payments:  rest.NewPaymentHandler(paymentService, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
	}

	router := rest.NewRouter(*cfg, handlers, logger, registry)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
