package models

import "time"

type Vet struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	LicenseNumber string `gorm:"size:50;uniqueIndex;not null" json:"license_number"`
	Phone         string `gorm:"size:20" json:"phone"`
	// Nullable so the unique index ignores vets without an email.
	Email          *string `gorm:"size:100;uniqueIndex" json:"email"`
	Specialization string  `gorm:"size:100" json:"specialization"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Vet) FullName() string {
	return v.FirstName + " " + v.LastName
}
