package models

import (
	"time"
)

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Name      string    `gorm:"not null;size:160" json:"name"`
	Email     string    `gorm:"size:120" json:"email,omitempty"`
	TaxID     string    `gorm:"size:40" json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Client) PrimaryKey() (uint, bool)    { return c.ID, c.ID != 0 }
func (c Client) DisplayName() string         { return c.Name }
func (c Client) ContactEmail() string        { return c.Email }
func (c Client) OwnerTenantID() (uint, bool) { return c.TenantID, c.TenantID != 0 }
