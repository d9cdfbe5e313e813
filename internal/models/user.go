package models

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TenantID     uint      `gorm:"not null;index" json:"tenant_id"`
	Name         string    `gorm:"not null;size:120" json:"name"`
	Email        string    `gorm:"unique;not null;size:120" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	Role         string    `gorm:"not null;size:20;default:'member'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) PrimaryKey() (uint, bool)    { return u.ID, u.ID != 0 }
func (u User) DisplayName() string         { return u.Name }
func (u User) ContactEmail() string        { return u.Email }
func (u User) OwnerTenantID() (uint, bool) { return u.TenantID, u.TenantID != 0 }
