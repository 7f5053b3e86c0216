package appointment

import "github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// Cancel, complete and no-show are all terminal moves out of "scheduled".

func CanCancel(current Status) error {
	return requireScheduled(current)
}

func CanComplete(current Status) error {
	return requireScheduled(current)
}

func CanMarkNoShow(current Status) error {
	return requireScheduled(current)
}

func requireScheduled(current Status) error {
	if current != StatusScheduled {
		return apperr.Validation("appointment", "status", "not in scheduled state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
