package store

import (
	"context"
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/dto"
)

// Read-side join producing the appointment_details projection. Works the same
// on postgres and sqlite; always recomputed from committed state.
const appointmentDetailSelect = `
SELECT
    a.id           AS appointment_id,
    a.scheduled_at AS scheduled_at,
    a.status       AS status,
    a.reason       AS reason,
    p.id           AS pet_id,
    p.name         AS pet_name,
    p.species      AS pet_species,
    o.id           AS owner_id,
    (o.first_name || ' ' || o.last_name) AS owner_name,
    v.id           AS vet_id,
    (v.first_name || ' ' || v.last_name) AS vet_name
FROM appointments a
JOIN pets p   ON p.id = a.pet_id
JOIN owners o ON o.id = p.owner_id
JOIN vets v   ON v.id = a.vet_id`

func (s *AppointmentStore) GetDetail(ctx context.Context, id uint) (*dto.AppointmentDetailDTO, error) {
	var d dto.AppointmentDetailDTO

	res := s.db.WithContext(ctx).
		Raw(appointmentDetailSelect+" WHERE a.id = ?", id).
		Scan(&d)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("appointment", id)
	}
	return &d, nil
}

func (s *AppointmentStore) ListDetailsForVetDay(
	ctx context.Context,
	vetID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]dto.AppointmentDetailDTO, error) {

	details := make([]dto.AppointmentDetailDTO, 0)

	err := s.db.WithContext(ctx).
		Raw(
			appointmentDetailSelect+
				" WHERE a.vet_id = ? AND a.scheduled_at >= ? AND a.scheduled_at < ?"+
				" ORDER BY a.scheduled_at ASC",
			vetID, dayStart, dayEnd,
		).
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}
