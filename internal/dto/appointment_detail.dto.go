package dto

import "time"

// AppointmentDetailDTO is the denormalized read of an appointment joined with
// its pet, owner and vet. Recomputed on read, never stored.
type AppointmentDetailDTO struct {
	AppointmentID uint      `json:"appointment_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason"`

	PetID      uint   `json:"pet_id"`
	PetName    string `json:"pet_name"`
	PetSpecies string `json:"pet_species"`

	OwnerID   uint   `json:"owner_id"`
	OwnerName string `json:"owner_name"`

	VetID   uint   `json:"vet_id"`
	VetName string `json:"vet_name"`
}
