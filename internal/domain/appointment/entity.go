package appointment

import (
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// ===============================
// Booking Input
// ===============================

// ServiceLine is one catalog service attached to a booking. The price is
// snapshotted by the store at booking time, not carried here.
type ServiceLine struct {
	ServiceID uint
	Quantity  int
}

type BookingInput struct {
	PetID       uint
	VetID       uint
	ScheduledAt time.Time
	Reason      string
	Notes       string
	CreatedBy   *uint
	Services    []ServiceLine
}
