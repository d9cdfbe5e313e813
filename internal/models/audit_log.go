package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog is an append-only record of one mutation of one entity.
// Actor and tenant are weak references: ids only, never joined on write.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"size:100;not null" json:"action"` // e.g. "PROJECT_CREATE", "INVOICE_DELETE"
	EntityType  string    `gorm:"size:100" json:"entity_type"`
	EntityID    *uint     `json:"entity_id"`
	Meta        *string   `gorm:"size:255" json:"meta"`
	ActorUserID *uint     `gorm:"index" json:"actor_user_id"` // Nil for system and batch operations
	TenantID    *uint     `gorm:"index:idx_audit_logs_tenant_created,priority:1" json:"tenant_id"`
	CreatedAt   time.Time `gorm:"not null;index:idx_audit_logs_tenant_created,priority:2" json:"created_at"`

	source keyed `gorm:"-"`
}

type keyed interface {
	PrimaryKey() (uint, bool)
}

type owned interface {
	OwnerTenantID() (uint, bool)
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// TrackEntity remembers the audited entity so an id or owning tenant assigned
// later in the same transaction can still be recorded.
func (a *AuditLog) TrackEntity(entity any) {
	if k, ok := entity.(keyed); ok {
		a.source = k
	}
}

// BeforeCreate back-fills EntityID for records built before their entity
// was inserted. An owning tenant known only after the insert replaces the
// ambient one, so creating a tenant is recorded under that tenant.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.source == nil {
		return nil
	}
	if a.EntityID == nil {
		if id, ok := a.source.PrimaryKey(); ok {
			a.EntityID = &id
		}
	}
	if o, ok := a.source.(owned); ok {
		if tenantID, ok := o.OwnerTenantID(); ok {
			a.TenantID = &tenantID
		}
	}
	return nil
}
