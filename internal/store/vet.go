package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type VetStore struct {
	db *gorm.DB
}

func NewVetStore(db *gorm.DB) *VetStore {
	return &VetStore{db: db}
}

func validateVet(v *models.Vet) error {
	if strings.TrimSpace(v.FirstName) == "" {
		return apperr.Validation("vet", "first_name", "required")
	}
	if strings.TrimSpace(v.LastName) == "" {
		return apperr.Validation("vet", "last_name", "required")
	}
	if strings.TrimSpace(v.LicenseNumber) == "" {
		return apperr.Validation("vet", "license_number", "required")
	}
	v.Email = emptyToNil(v.Email)
	return nil
}

func (s *VetStore) Create(ctx context.Context, v *models.Vet) error {
	if err := validateVet(v); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := vetUniqueness(tx, v, 0); err != nil {
			return err
		}
		if err := tx.Create(v).Error; err != nil {
			return translateDup(err, "vet", "license_number", v.LicenseNumber)
		}
		return nil
	})
}

func (s *VetStore) Get(ctx context.Context, id uint) (*models.Vet, error) {
	var v models.Vet
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFoundOr(err, "vet", id)
	}
	return &v, nil
}

func (s *VetStore) List(ctx context.Context, activeOnly bool) ([]models.Vet, error) {
	q := s.db.WithContext(ctx).Order("last_name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var vets []models.Vet
	if err := q.Find(&vets).Error; err != nil {
		return nil, err
	}
	return vets, nil
}

func (s *VetStore) Update(ctx context.Context, v *models.Vet) error {
	if err := validateVet(v); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &models.Vet{}, v.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("vet", v.ID)
		}

		if err := vetUniqueness(tx, v, v.ID); err != nil {
			return err
		}

		// Deactivation (is_active=false) is an ordinary update; existing
		// appointments are left untouched.
		if err := tx.Save(v).Error; err != nil {
			return translateDup(err, "vet", "license_number", v.LicenseNumber)
		}
		return nil
	})
}

// Delete is restricted while the vet still has appointments, regardless of
// their status.
func (s *VetStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where("vet_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Dependency("vet", "appointment")
		}

		if err := tx.Where("vet_id = ?", id).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Vet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("vet", id)
		}
		return nil
	})
}

func vetUniqueness(tx *gorm.DB, v *models.Vet, excludeID uint) error {
	var count int64
	if err := tx.Model(&models.Vet{}).
		Where("license_number = ? AND id <> ?", v.LicenseNumber, excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("vet", "license_number", v.LicenseNumber)
	}

	if v.Email != nil {
		if err := tx.Model(&models.Vet{}).
			Where("email = ? AND id <> ?", *v.Email, excludeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("vet", "email", *v.Email)
		}
	}
	return nil
}
