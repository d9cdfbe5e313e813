package services

import (
	"context"
	"errors"
	"fmt"

	"notas/internal/auth"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrNoTenant          = errors.New("no tenant in request context")
	ErrInvalidState      = errors.New("operation not allowed in current state")
)

// tenantFromContext returns the tenant of the authenticated caller.
func tenantFromContext(ctx context.Context) (uint, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || claims.TenantID == 0 {
		return 0, ErrNoTenant
	}
	return claims.TenantID, nil
}

// findOwned loads one tenant-scoped row by id.
func findOwned[T any](ctx context.Context, db *gorm.DB, tenantID, id uint) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
