package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleReception  = "reception"
	RoleVet        = "vet"
	RoleAccountant = "accountant"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Name     string `gorm:"size:100;not null" json:"name"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Role string `gorm:"size:20;default:'reception'" json:"role"`
	// Nullable so the unique index ignores accounts without an email.
	Email *string `gorm:"size:100;uniqueIndex" json:"email"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
