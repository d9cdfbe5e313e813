package audit

import (
	"errors"
	"strings"
	"time"

	"notas/internal/models"
)

type Operation string

const (
	OpCreate Operation = "CREATE"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

var ErrUnnamedEntity = errors.New("cannot audit an entity without a type name")

// Builder turns one mutation into an unsaved AuditLog.
type Builder struct {
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// WithClock returns a copy of the builder that stamps records with now.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	return &Builder{now: now}
}

func (b *Builder) Build(op Operation, entity any, actor Actor) (*models.AuditLog, error) {
	d := Describe(entity)
	if d.TypeName == "" {
		return nil, ErrUnnamedEntity
	}

	record := &models.AuditLog{
		Action:      ActionName(d.TypeName, op),
		EntityType:  d.TypeName,
		EntityID:    d.ID,
		Meta:        d.Summary,
		ActorUserID: actor.UserID,
		TenantID:    actor.TenantID,
		CreatedAt:   b.now().UTC(),
	}
	if owned, ok := entity.(HasTenant); ok {
		if tenantID, ok := owned.OwnerTenantID(); ok {
			record.TenantID = &tenantID
		}
	}
	if d.ID == nil {
		record.TrackEntity(entity)
	}
	return record, nil
}

// ActionName is UPPER(type) + "_" + operation, e.g. "INVOICE_DELETE".
func ActionName(typeName string, op Operation) string {
	return strings.ToUpper(typeName) + "_" + string(op)
}
