//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taxnation/crm-backend/internal/adapter/postgres"
	auditrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/audit"
	recordrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/record"
	"github.com/taxnation/crm-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/token"
	userrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/user"
	authpkg "github.com/taxnation/crm-backend/internal/auth"
	"github.com/taxnation/crm-backend/internal/config"
	"github.com/taxnation/crm-backend/internal/domain"
	authsvc "github.com/taxnation/crm-backend/internal/service/auth"
	"github.com/taxnation/crm-backend/internal/service/booking"
	"github.com/taxnation/crm-backend/internal/service/employee"
	"github.com/taxnation/crm-backend/internal/service/invoice"
	"github.com/taxnation/crm-backend/internal/service/lead"
	"github.com/taxnation/crm-backend/internal/service/payment"
	usersvc "github.com/taxnation/crm-backend/internal/service/user"
	"github.com/taxnation/crm-backend/internal/transport/rest"
)

// testEnv bundles the running HTTP server and direct repo access for setup.
type testEnv struct {
	server *httptest.Server
	pool   *pgxpool.Pool
	users  *userrepo.Repo
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Server.RateLimit = 10000
	cfg.Server.RateWindow = time.Minute
	cfg.Auth.JWTSecret = "e2e-test-secret"
	cfg.Auth.JWTIssuer = "crm-e2e"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 24 * time.Hour
	cfg.CORS.AllowedOrigins = "*"
	cfg.CORS.AllowedMethods = "GET,POST,PATCH,DELETE,OPTIONS"
	cfg.CORS.AllowedHeaders = "Authorization,Content-Type"
	return cfg
}

// newTestEnv boots the full HTTP stack against a containerized database.
// The payment gateway is left unconfigured, so link creation returns 500
// unless a test swaps it in.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	txManager := postgres.NewTxManager(pool)
	records := recordrepo.New(pool)
	audits := auditrepo.New(pool)
	tokens := tokenrepo.New(pool)
	users := userrepo.New(pool)

	jwtManager := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, tokens, jwtManager, cfg.Auth)
	userService := usersvc.NewService(logger, users, tokens)
	bookingService := booking.NewService(logger, records, audits, txManager)
	leadService := lead.NewService(logger, records, audits, txManager)
	invoiceService := invoice.NewService(logger, records, audits, txManager)
	employeeService := employee.NewService(logger, records, audits, txManager)
	paymentService := payment.NewService(logger, nil, records, audits, txManager)

	handlers := rest.Handlers{
		Auth:      rest.NewAuthHandler(authService, logger),
		Users:     rest.NewUserHandler(userService, logger),
		Bookings:  rest.NewRecordHandler(bookingService, "booking", logger),
		Leads:     rest.NewRecordHandler(leadService, "lead", logger),
		Invoices:  rest.NewRecordHandler(invoiceService, "invoice", logger),
		Employees: rest.NewEmployeeHandler(employeeService, logger),
		Payments:  rest.NewPaymentHandler(paymentService, logger),
		Health:    rest.NewHealthHandler(pool, "e2e"),
	}

	router := rest.NewRouter(cfg, handlers, logger, prometheus.NewRegistry())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, pool: pool, users: users}
}

// createUser inserts a user directly through the repository, bypassing the
// role checks that guard the HTTP endpoint.
func (e *testEnv) createUser(t *testing.T, name, email, password string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	u := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

// login performs a real login request and returns the access token.
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, "login failed: %s", body)

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// do issues a JSON request against the test server. An empty token sends the
// request anonymously.
func (e *testEnv) do(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reqBody)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func decodeMap(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m), "body: %s", body)
	return m
}

func bookingPayload() map[string]any {
	return map[string]any{
		"fields": map[string]any{
			"branch_name":    "Mumbai HQ",
			"contact_person": "Priya Shah",
			"email":          "priya@example.com",
			"services":       []string{"GST Filing", "ITR"},
			"total_amount":   14999.0,
			"pan":            "ABCDE1234F",
			"state":          "Maharashtra",
			"status":         "Pending",
		},
	}
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}
