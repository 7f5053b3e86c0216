package models

import "time"

const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

type Pet struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint  `gorm:"index;not null" json:"owner_id"`
	Owner   Owner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Species string `gorm:"size:50;not null" json:"species"`
	Breed   string `gorm:"size:100" json:"breed"`

	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `gorm:"size:10;default:'unknown'" json:"gender"`

	MicrochipID *string `gorm:"size:50;uniqueIndex" json:"microchip_id"`
	PhotoURL    string  `gorm:"size:512" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
