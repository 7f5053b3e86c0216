package appointment

import (
	"context"
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/dto"
)

type AvailabilityInput struct {
	VetID     uint
	ServiceID uint
	Date      time.Time
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute walks the vet's working hours for the day in steps of the service
// duration, skipping lunch and already-booked slots. Working hours only shape
// what is offered here; the store's collision check remains the hard rule.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]dto.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Reference("service", "service_id", in.ServiceID)
		}
		return nil, err
	}

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, in.VetID, weekday)
	if err != nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return []dto.TimeSlot{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = parseHM(wh.LunchStart)
		lunchEnd = parseHM(wh.LunchEnd)
	}

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.VetID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	slots := make([]dto.TimeSlot, 0)

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasLunch && slotStart.Before(lunchEnd) && slotEnd.After(lunchStart) {
			continue
		}

		conflict := false
		for _, ap := range appointments {
			if !ap.ScheduledAt.Before(slotStart) && ap.ScheduledAt.Before(slotEnd) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, dto.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
