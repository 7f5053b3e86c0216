package appointment

import (
	"context"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/audit"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/cache"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.ScheduleCache
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.ScheduleCache,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in domain.BookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Vet must exist and accept new bookings
	// --------------------------------------------------
	vet, err := uc.repo.GetVet(ctx, in.VetID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Reference("vet", "vet_id", in.VetID)
		}
		return nil, err
	}

	if !vet.IsActive {
		return nil, apperr.Validation("vet", "vet_id", "vet is not accepting bookings")
	}

	// --------------------------------------------------
	// Booking + service snapshots, one transaction
	// --------------------------------------------------
	ap := &models.Appointment{
		PetID:       in.PetID,
		VetID:       in.VetID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(domain.InitialStatus()),
		Reason:      in.Reason,
		Notes:       in.Notes,
		CreatedBy:   in.CreatedBy,
	}

	if err := uc.repo.CreateWithServices(ctx, ap, in.Services); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, ap.VetID, ap.ScheduledAt)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.CreatedBy,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
