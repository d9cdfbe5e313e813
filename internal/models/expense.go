package models

import (
	"time"
)

const (
	ExpenseStatusDraft     = "draft"
	ExpenseStatusSubmitted = "submitted"
)

type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"not null;index" json:"tenant_id"`
	ProjectID   *uint     `gorm:"index" json:"project_id,omitempty"`
	Description string    `gorm:"type:text;not null" json:"description"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Status      string    `gorm:"not null;size:20;default:'draft'" json:"status"`
	SpentOn     time.Time `json:"spent_on"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e Expense) PrimaryKey() (uint, bool)    { return e.ID, e.ID != 0 }
func (e Expense) DisplayDescription() string  { return e.Description }
func (e Expense) OwnerTenantID() (uint, bool) { return e.TenantID, e.TenantID != 0 }
