package models

import "time"

// AppointmentService links an appointment to a catalog service. PriceAtTime is
// captured from the catalog when the row is created and is never rewritten,
// so later catalog price changes do not touch historical bookings.
type AppointmentService struct {
	AppointmentID uint        `gorm:"primaryKey" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"primaryKey" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Quantity    int     `gorm:"default:1" json:"quantity"`
	PriceAtTime float64 `gorm:"type:numeric(10,2);not null" json:"price_at_time"`

	CreatedAt time.Time `json:"created_at"`
}
