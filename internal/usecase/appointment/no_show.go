package appointment

import (
	"context"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/audit"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/cache"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.ScheduleCache
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.ScheduleCache,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	appointmentID uint,
	userID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.MarkNoShow(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, ap.VetID, ap.ScheduledAt)

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_no_show",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
