package routes_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/domain"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/config"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/security"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/repository"
	httproutes "github.com/RahulSaini3125/jwt-auth-rest-api/internal/transport/http/routes"
	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/usecase"
)

type emptyAccountRepo struct{}

func (emptyAccountRepo) Create(context.Context, domain.Account) error { return nil }
func (emptyAccountRepo) GetByID(context.Context, string) (*domain.Account, error) {
	return nil, repository.ErrNotFound
}
func (emptyAccountRepo) GetByEmail(context.Context, string) (*domain.Account, error) {
	return nil, repository.ErrNotFound
}
func (emptyAccountRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (emptyAccountRepo) MarkActivated(context.Context, string, time.Time) error {
	return repository.ErrNotFound
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	cfg := &config.AppConfig{App: config.AppSettings{Env: "test"}}

	proofs, err := security.NewStateProofIssuer("routes-test-secret")
	if err != nil {
		t.Fatalf("new proof issuer: %v", err)
	}
	activation := usecase.NewActivationService(emptyAccountRepo{}, proofs, nil, time.Hour, logger)

	return httproutes.Register(httproutes.Dependencies{
		Config: cfg,
		Logger: logger,
		Services: httproutes.ServiceSet{
			Activation: activation,
		},
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestActivationEndpointRejectsUnknownLink(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/activate/bm9ib2R5/garbage-token", nil)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

type readyChecker struct{ err error }

func (c readyChecker) Ping(context.Context) error        { return c.err }
func (c readyChecker) HealthCheck(context.Context) error { return c.err }

func TestReadinessEndpointReportsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{App: config.AppSettings{Env: "test"}}
	r := httproutes.Register(httproutes.Dependencies{
		Config:   cfg,
		Logger:   zap.NewNop(),
		Database: readyChecker{},
		Cache:    readyChecker{err: errors.New("redis down")},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/readyz", nil)

	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}
