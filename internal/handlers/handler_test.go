package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notas/internal/audit"
	"notas/internal/auth"
	"notas/internal/config"
	"notas/internal/repository"
	"notas/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.InitDB(config.Config{DatabaseURL: "sqlite://:memory:"})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		JWTSecret:         testSecret,
		AuditDefaultLimit: 100,
		AuditMaxLimit:     200,
		MetricsEnabled:    true,
	}

	registry := prometheus.NewRegistry()
	store := repository.NewStore(db)
	interceptor := audit.NewInterceptor(logger, audit.WithMetrics(audit.NewMetrics(registry)))
	require.NoError(t, audit.Install(store, interceptor))
	store.Seal()

	h := NewHandler(cfg, logger, db, nil, registry,
		services.NewProjectService(store),
		services.NewInvoiceService(store),
		services.NewExpenseService(store),
		services.NewAuditService(repository.NewAuditRepository(db), cfg.AuditMaxLimit, logger),
	)
	return h, db
}

func bearer(t *testing.T, userID, tenantID uint) string {
	t.Helper()
	token, err := auth.SignToken(testSecret, userID, tenantID, "", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(r http.Handler, method, path, authz string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
