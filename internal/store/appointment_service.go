package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

// --------------------------------------------------
// Appointment service lines (join rows)
// --------------------------------------------------

// AddService attaches a catalog service to an existing appointment. The price
// snapshot is taken from the catalog inside the same transaction.
func (s *AppointmentStore) AddService(
	ctx context.Context,
	appointmentID uint,
	serviceID uint,
	quantity int,
) (*models.AppointmentService, error) {

	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, apperr.Validation("appointment_service", "quantity", "must be at least 1")
	}

	var row models.AppointmentService

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apOK, err := rowExists(tx, &models.Appointment{}, appointmentID)
		if err != nil {
			return err
		}
		if !apOK {
			return apperr.Reference("appointment", "appointment_id", appointmentID)
		}

		var sv models.Service
		if err := tx.First(&sv, serviceID).Error; err != nil {
			return referenceOr(err, "service", "service_id", serviceID)
		}

		var count int64
		if err := tx.Model(&models.AppointmentService{}).
			Where("appointment_id = ? AND service_id = ?", appointmentID, serviceID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("appointment_service", "service_id", sv.Name)
		}

		row = models.AppointmentService{
			AppointmentID: appointmentID,
			ServiceID:     serviceID,
			Quantity:      quantity,
			PriceAtTime:   sv.Price,
		}
		if err := tx.Create(&row).Error; err != nil {
			return translateDup(err, "appointment_service", "service_id", sv.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateServiceQuantity changes the quantity only. price_at_time is immutable
// after creation; no code path rewrites it.
func (s *AppointmentStore) UpdateServiceQuantity(
	ctx context.Context,
	appointmentID uint,
	serviceID uint,
	quantity int,
) error {

	if quantity < 1 {
		return apperr.Validation("appointment_service", "quantity", "must be at least 1")
	}

	res := s.db.WithContext(ctx).
		Model(&models.AppointmentService{}).
		Where("appointment_id = ? AND service_id = ?", appointmentID, serviceID).
		Select("quantity").
		Updates(map[string]any{"quantity": quantity})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("appointment_service", appointmentID)
	}
	return nil
}

func (s *AppointmentStore) RemoveService(
	ctx context.Context,
	appointmentID uint,
	serviceID uint,
) error {

	res := s.db.WithContext(ctx).
		Where("appointment_id = ? AND service_id = ?", appointmentID, serviceID).
		Delete(&models.AppointmentService{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("appointment_service", appointmentID)
	}
	return nil
}

func (s *AppointmentStore) ListServices(
	ctx context.Context,
	appointmentID uint,
) ([]models.AppointmentService, error) {

	var rows []models.AppointmentService
	if err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("service_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
