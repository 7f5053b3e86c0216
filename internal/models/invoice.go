package models

import "time"

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	InvoiceNumber string `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`

	TotalAmount float64 `gorm:"type:numeric(10,2);default:0.00" json:"total_amount"`
	TaxAmount   float64 `gorm:"type:numeric(10,2);default:0.00" json:"tax_amount"`

	IssuedAt time.Time  `json:"issued_at"`
	Paid     bool       `gorm:"default:false" json:"paid"`
	PaidAt   *time.Time `json:"paid_at"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
