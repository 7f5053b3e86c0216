package models

import "time"

type Owner struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	Phone   string  `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email   *string `gorm:"size:100;uniqueIndex" json:"email"`
	Address string  `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Owner) FullName() string {
	return o.FirstName + " " + o.LastName
}
