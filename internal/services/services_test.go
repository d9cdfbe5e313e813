package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"notas/internal/audit"
	"notas/internal/auth"
	"notas/internal/config"
	"notas/internal/models"
	"notas/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// setupTestStore returns a migrated in-memory database behind a sealed store
// with auditing installed.
func setupTestStore(t *testing.T) (*repository.Store, *gorm.DB) {
	t.Helper()
	db, err := repository.InitDB(config.Config{DatabaseURL: "sqlite://:memory:"})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	store := repository.NewStore(db)
	require.NoError(t, audit.Install(store, audit.NewInterceptor(testLogger())))
	store.Seal()
	return store, db
}

func asUser(userID, tenantID uint) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: userID, TenantID: tenantID})
}

func actions(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var logs []models.AuditLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Action)
	}
	return out
}
