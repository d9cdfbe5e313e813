package models

import (
	"time"
)

const (
	InvoiceStatusOpen = "open"
	InvoiceStatusPaid = "paid"
)

type Invoice struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TenantID    uint       `gorm:"not null;uniqueIndex:idx_invoices_tenant_number" json:"tenant_id"`
	ClientID    uint       `gorm:"not null;index" json:"client_id"`
	ProjectID   *uint      `gorm:"index" json:"project_id,omitempty"`
	Number      string     `gorm:"not null;size:40;uniqueIndex:idx_invoices_tenant_number" json:"number"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	Status      string     `gorm:"not null;size:20;default:'open'" json:"status"`
	IssuedAt    time.Time  `json:"issued_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (i Invoice) PrimaryKey() (uint, bool)    { return i.ID, i.ID != 0 }
func (i Invoice) DisplayCode() string         { return i.Number }
func (i Invoice) DisplayDescription() string  { return i.Description }
func (i Invoice) OwnerTenantID() (uint, bool) { return i.TenantID, i.TenantID != 0 }
