package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type WorkingHoursStore struct {
	db *gorm.DB
}

func NewWorkingHoursStore(db *gorm.DB) *WorkingHoursStore {
	return &WorkingHoursStore{db: db}
}

func (s *WorkingHoursStore) ListForVet(ctx context.Context, vetID uint) ([]models.WorkingHours, error) {
	var hours []models.WorkingHours
	if err := s.db.WithContext(ctx).
		Where("vet_id = ?", vetID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// ReplaceForVet swaps out the vet's full week in one transaction.
func (s *WorkingHoursStore) ReplaceForVet(
	ctx context.Context,
	vetID uint,
	hours []models.WorkingHours,
) error {

	for _, wh := range hours {
		if wh.Weekday < 0 || wh.Weekday > 6 {
			return apperr.Validation("working_hours", "weekday", "must be 0 through 6")
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vetOK, err := rowExists(tx, &models.Vet{}, vetID)
		if err != nil {
			return err
		}
		if !vetOK {
			return apperr.Reference("vet", "vet_id", vetID)
		}

		if err := tx.Where("vet_id = ?", vetID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for i := range hours {
			hours[i].ID = 0
			hours[i].VetID = vetID
			if err := tx.Create(&hours[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
