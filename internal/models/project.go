package models

import (
	"time"
)

const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"not null;uniqueIndex:idx_projects_tenant_code" json:"tenant_id"`
	ClientID    *uint     `gorm:"index" json:"client_id,omitempty"`
	Code        string    `gorm:"not null;size:40;uniqueIndex:idx_projects_tenant_code" json:"code"`
	Name        string    `gorm:"not null;size:160" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Status      string    `gorm:"not null;size:20;default:'active'" json:"status"`
	BudgetCents int64     `gorm:"not null;default:0" json:"budget_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p Project) PrimaryKey() (uint, bool)    { return p.ID, p.ID != 0 }
func (p Project) DisplayCode() string         { return p.Code }
func (p Project) DisplayName() string         { return p.Name }
func (p Project) DisplayDescription() string  { return p.Description }
func (p Project) OwnerTenantID() (uint, bool) { return p.TenantID, p.TenantID != 0 }
