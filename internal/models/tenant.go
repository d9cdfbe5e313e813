package models

import (
	"time"
)

// Tenant is the ownership boundary for every business record.
type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:120" json:"name"`
	Slug      string    `gorm:"unique;not null;size:60" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Tenant) PrimaryKey() (uint, bool) { return t.ID, t.ID != 0 }
func (t Tenant) DisplayCode() string      { return t.Slug }
func (t Tenant) DisplayName() string      { return t.Name }

// OwnerTenantID is the tenant itself once it has been assigned an id.
func (t Tenant) OwnerTenantID() (uint, bool) { return t.ID, t.ID != 0 }
