package repository

import (
	"context"

	"notas/internal/models"

	"gorm.io/gorm"
)

// ActorProjection is the shallow view of a user shown next to audit records.
type ActorProjection struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuditRepository is the read side of the audit log. Records are only ever
// written through a UnitOfWork commit.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// ListByTenant returns one page of a tenant's audit records, newest first,
// and the tenant's total record count.
func (r *AuditRepository) ListByTenant(ctx context.Context, tenantID uint, limit, offset int) ([]models.AuditLog, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&models.AuditLog{}).Where("tenant_id = ?", tenantID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]models.AuditLog, 0, limit)
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ActorsByID resolves actor references in a single query. Ids that no longer
// match a user are absent from the result.
func (r *AuditRepository) ActorsByID(ctx context.Context, ids []uint) (map[uint]ActorProjection, error) {
	actors := make(map[uint]ActorProjection, len(ids))
	if len(ids) == 0 {
		return actors, nil
	}

	var rows []ActorProjection
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "name", "email").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		actors[row.ID] = row
	}
	return actors, nil
}
