package appointment

import (
	"context"
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/cache"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/dto"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/timezone"
)

type GetDaySchedule struct {
	repo   domain.Repository
	cache  *cache.ScheduleCache
	clinic string
}

func NewGetDaySchedule(
	repo domain.Repository,
	cache *cache.ScheduleCache,
	clinicTimezone string,
) *GetDaySchedule {
	return &GetDaySchedule{
		repo:   repo,
		cache:  cache,
		clinic: clinicTimezone,
	}
}

// Execute returns the denormalized schedule for one vet and one clinic-local
// day. The redis cache is a read accelerator only; booking writes invalidate
// the day, so a hit never serves a stale schedule.
func (uc *GetDaySchedule) Execute(
	ctx context.Context,
	vetID uint,
	date time.Time,
) ([]dto.AppointmentDetailDTO, error) {

	loc := timezone.Location(uc.clinic)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	if details, ok := uc.cache.GetDay(ctx, vetID, start); ok {
		return details, nil
	}

	details, err := uc.repo.ListDetailsForVetDay(ctx, vetID, start, end)
	if err != nil {
		return nil, err
	}

	uc.cache.SetDay(ctx, vetID, start, details)

	return details, nil
}
