package models

import (
	"time"
)

type Reimbursement struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TenantID    uint       `gorm:"not null;index" json:"tenant_id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	ExpenseID   *uint      `gorm:"index" json:"expense_id,omitempty"`
	Title       string     `gorm:"not null;size:160" json:"title"`
	AmountCents int64      `gorm:"not null" json:"amount_cents"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r Reimbursement) PrimaryKey() (uint, bool)    { return r.ID, r.ID != 0 }
func (r Reimbursement) DisplayTitle() string        { return r.Title }
func (r Reimbursement) OwnerTenantID() (uint, bool) { return r.TenantID, r.TenantID != 0 }
