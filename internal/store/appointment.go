package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type AppointmentStore struct {
	db *gorm.DB
}

func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

// ListFilter narrows the appointment listing; zero values mean "any".
type ListFilter struct {
	PetID  uint
	VetID  uint
	Status string
	From   *time.Time
	To     *time.Time
}

// --------------------------------------------------
// Lookups used by the booking use cases
// --------------------------------------------------

func (s *AppointmentStore) GetVet(ctx context.Context, id uint) (*models.Vet, error) {
	var v models.Vet
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFoundOr(err, "vet", id)
	}
	return &v, nil
}

func (s *AppointmentStore) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var sv models.Service
	if err := s.db.WithContext(ctx).First(&sv, id).Error; err != nil {
		return nil, notFoundOr(err, "service", id)
	}
	return &sv, nil
}

func (s *AppointmentStore) GetWorkingHours(
	ctx context.Context,
	vetID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := s.db.WithContext(ctx).
		Where("vet_id = ? AND weekday = ?", vetID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Create (booking collision guarded)
// --------------------------------------------------

func validateAppointment(ap *models.Appointment) error {
	if ap.ScheduledAt.IsZero() {
		return apperr.Validation("appointment", "scheduled_at", "required")
	}
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}
	if !domain.IsValidStatus(ap.Status) {
		return apperr.Validation("appointment", "status", "unknown status")
	}
	return nil
}

// CreateWithServices books an appointment and its service lines in one
// transaction. The collision count plus the composite unique index on
// (vet_id, scheduled_at) guarantee that of two concurrent bookings for the
// same slot exactly one commits; the loser gets a ConflictError.
func (s *AppointmentStore) CreateWithServices(
	ctx context.Context,
	ap *models.Appointment,
	lines []domain.ServiceLine,
) error {

	if err := validateAppointment(ap); err != nil {
		return err
	}

	for i := range lines {
		if lines[i].Quantity == 0 {
			lines[i].Quantity = 1
		}
		if lines[i].Quantity < 1 {
			return apperr.Validation("appointment_service", "quantity", "must be at least 1")
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		petOK, err := rowExists(tx, &models.Pet{}, ap.PetID)
		if err != nil {
			return err
		}
		if !petOK {
			return apperr.Reference("pet", "pet_id", ap.PetID)
		}

		vetOK, err := rowExists(tx, &models.Vet{}, ap.VetID)
		if err != nil {
			return err
		}
		if !vetOK {
			return apperr.Reference("vet", "vet_id", ap.VetID)
		}

		if err := assertSlotFree(tx, ap.VetID, ap.ScheduledAt, 0); err != nil {
			return err
		}

		if err := tx.Create(ap).Error; err != nil {
			return translateDup(err, "appointment", "scheduled_at", ap.ScheduledAt.Format(time.RFC3339))
		}

		for _, line := range lines {
			var sv models.Service
			if err := tx.First(&sv, line.ServiceID).Error; err != nil {
				return referenceOr(err, "service", "service_id", line.ServiceID)
			}

			row := models.AppointmentService{
				AppointmentID: ap.ID,
				ServiceID:     sv.ID,
				Quantity:      line.Quantity,
				PriceAtTime:   sv.Price, // snapshot, never recomputed
			}
			if err := tx.Create(&row).Error; err != nil {
				return translateDup(err, "appointment_service", "service_id", "")
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Read / list
// --------------------------------------------------

func (s *AppointmentStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := s.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFoundOr(err, "appointment", id)
	}
	return &ap, nil
}

func (s *AppointmentStore) List(ctx context.Context, f ListFilter) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).Model(&models.Appointment{})

	if f.PetID != 0 {
		q = q.Where("pet_id = ?", f.PetID)
	}
	if f.VetID != 0 {
		q = q.Where("vet_id = ?", f.VetID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("scheduled_at < ?", *f.To)
	}

	var apps []models.Appointment
	if err := q.Order("scheduled_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListAppointmentsForDay returns every booking in the window regardless of
// status. Cancelled and no-show rows still hold their slot, so availability
// has to treat them as busy just like the slot check does.
func (s *AppointmentStore) ListAppointmentsForDay(
	ctx context.Context,
	vetID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := s.db.WithContext(ctx).
		Where(
			"vet_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			vetID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Update
// --------------------------------------------------

// UpdateStatus persists a status transition decided by the domain layer.
// Save refreshes updated_at.
func (s *AppointmentStore) UpdateStatus(ctx context.Context, ap *models.Appointment) error {
	if !domain.IsValidStatus(ap.Status) {
		return apperr.Validation("appointment", "status", "unknown status")
	}
	return s.db.WithContext(ctx).Save(ap).Error
}

// UpdateFields edits reason and notes without touching the slot.
func (s *AppointmentStore) UpdateFields(ctx context.Context, id uint, reason, notes string) (*models.Appointment, error) {
	var ap models.Appointment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ap, id).Error; err != nil {
			return notFoundOr(err, "appointment", id)
		}

		ap.Reason = reason
		ap.Notes = notes
		return tx.Save(&ap).Error
	})
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// Reschedule moves the appointment to a new datetime, re-checking the
// (vet, scheduled_at) invariant in the same transaction.
func (s *AppointmentStore) Reschedule(
	ctx context.Context,
	id uint,
	scheduledAt time.Time,
) (*models.Appointment, error) {

	if scheduledAt.IsZero() {
		return nil, apperr.Validation("appointment", "scheduled_at", "required")
	}

	var ap models.Appointment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ap, id).Error; err != nil {
			return notFoundOr(err, "appointment", id)
		}

		if err := assertSlotFree(tx, ap.VetID, scheduledAt, ap.ID); err != nil {
			return err
		}

		ap.ScheduledAt = scheduledAt
		if err := tx.Save(&ap).Error; err != nil {
			return translateDup(err, "appointment", "scheduled_at", scheduledAt.Format(time.RFC3339))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Delete (cascade)
// --------------------------------------------------

// Delete removes the appointment together with its service join rows and its
// invoice, all-or-nothing.
func (s *AppointmentStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", id).
			Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("appointment_id = ?", id).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Appointment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("appointment", id)
		}
		return nil
	})
}

// --------------------------------------------------
// Collision
// --------------------------------------------------

// assertSlotFree is the booking collision check: no other appointment for the
// same vet at the exact same stored datetime. Cancelled and no-show bookings
// still hold their slot row, so equality is checked across all statuses,
// matching the unique index.
func assertSlotFree(tx *gorm.DB, vetID uint, at time.Time, excludeID uint) error {
	var count int64
	if err := tx.Model(&models.Appointment{}).
		Where("vet_id = ? AND scheduled_at = ? AND id <> ?", vetID, at, excludeID).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return apperr.Conflict("appointment", "scheduled_at", at.Format(time.RFC3339))
	}
	return nil
}

func referenceOr(err error, entity, field string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Reference(entity, field, id)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentStore)(nil)
