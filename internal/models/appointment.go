package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PetID uint `gorm:"index;not null" json:"pet_id"`
	Pet   Pet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	VetID uint `gorm:"not null;uniqueIndex:idx_vet_slot" json:"vet_id"`
	Vet   Vet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	// One booking per vet per exact datetime.
	ScheduledAt time.Time `gorm:"not null;uniqueIndex:idx_vet_slot" json:"scheduled_at"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Reason string `gorm:"size:255" json:"reason"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedBy *uint `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
