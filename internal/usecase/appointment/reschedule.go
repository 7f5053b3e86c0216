package appointment

import (
	"context"
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/audit"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/cache"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.ScheduleCache
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.ScheduleCache,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	scheduledAt time.Time,
	userID *uint,
) (*models.Appointment, error) {

	before, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.Reschedule(ctx, appointmentID, scheduledAt)
	if err != nil {
		return nil, err
	}

	// Both the day the booking left and the day it landed on are stale.
	uc.cache.InvalidateDay(ctx, ap.VetID, before.ScheduledAt)
	uc.cache.InvalidateDay(ctx, ap.VetID, ap.ScheduledAt)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": before.ScheduledAt,
			"to":   ap.ScheduledAt,
		},
	})

	return ap, nil
}
