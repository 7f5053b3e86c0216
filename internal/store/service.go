package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type ServiceStore struct {
	db *gorm.DB
}

func NewServiceStore(db *gorm.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

func validateService(sv *models.Service) error {
	if strings.TrimSpace(sv.Name) == "" {
		return apperr.Validation("service", "name", "required")
	}
	if sv.Price < 0 {
		return apperr.Validation("service", "price", "must not be negative")
	}
	if sv.DurationMin < 0 {
		return apperr.Validation("service", "duration_min", "must not be negative")
	}
	if sv.DurationMin == 0 {
		sv.DurationMin = 30
	}
	return nil
}

func (s *ServiceStore) Create(ctx context.Context, sv *models.Service) error {
	if err := validateService(sv); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := serviceNameUnique(tx, sv, 0); err != nil {
			return err
		}
		if err := tx.Create(sv).Error; err != nil {
			return translateDup(err, "service", "name", sv.Name)
		}
		return nil
	})
}

func (s *ServiceStore) Get(ctx context.Context, id uint) (*models.Service, error) {
	var sv models.Service
	if err := s.db.WithContext(ctx).First(&sv, id).Error; err != nil {
		return nil, notFoundOr(err, "service", id)
	}
	return &sv, nil
}

func (s *ServiceStore) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := s.db.WithContext(ctx).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// Update changes the live catalog entry only. Historical price_at_time
// snapshots on appointment_services rows are never touched.
func (s *ServiceStore) Update(ctx context.Context, sv *models.Service) error {
	if err := validateService(sv); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &models.Service{}, sv.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("service", sv.ID)
		}

		if err := serviceNameUnique(tx, sv, sv.ID); err != nil {
			return err
		}

		if err := tx.Save(sv).Error; err != nil {
			return translateDup(err, "service", "name", sv.Name)
		}
		return nil
	})
}

// Delete is restricted while any appointment still references the service.
func (s *ServiceStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AppointmentService{}).
			Where("service_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Dependency("service", "appointment_service")
		}

		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("service", id)
		}
		return nil
	})
}

func serviceNameUnique(tx *gorm.DB, sv *models.Service, excludeID uint) error {
	var count int64
	if err := tx.Model(&models.Service{}).
		Where("name = ? AND id <> ?", sv.Name, excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("service", "name", sv.Name)
	}
	return nil
}
