package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type PetStore struct {
	db *gorm.DB
}

func NewPetStore(db *gorm.DB) *PetStore {
	return &PetStore{db: db}
}

func validatePet(p *models.Pet) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("pet", "name", "required")
	}
	if strings.TrimSpace(p.Species) == "" {
		return apperr.Validation("pet", "species", "required")
	}
	if p.Gender == "" {
		p.Gender = models.GenderUnknown
	}
	switch p.Gender {
	case models.GenderMale, models.GenderFemale, models.GenderUnknown:
	default:
		return apperr.Validation("pet", "gender", "must be male, female or unknown")
	}
	return nil
}

func (s *PetStore) Create(ctx context.Context, p *models.Pet) error {
	if err := validatePet(p); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &models.Owner{}, p.OwnerID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.Reference("owner", "owner_id", p.OwnerID)
		}

		if err := petMicrochipUnique(tx, p, 0); err != nil {
			return err
		}

		if err := tx.Create(p).Error; err != nil {
			return translateDup(err, "pet", "microchip_id", deref(p.MicrochipID))
		}
		return nil
	})
}

func (s *PetStore) Get(ctx context.Context, id uint) (*models.Pet, error) {
	var p models.Pet
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "pet", id)
	}
	return &p, nil
}

func (s *PetStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if ownerID != 0 {
		q = q.Where("owner_id = ?", ownerID)
	}
	if err := q.Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (s *PetStore) Update(ctx context.Context, p *models.Pet) error {
	if err := validatePet(p); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &models.Pet{}, p.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("pet", p.ID)
		}

		ownerOK, err := rowExists(tx, &models.Owner{}, p.OwnerID)
		if err != nil {
			return err
		}
		if !ownerOK {
			return apperr.Reference("owner", "owner_id", p.OwnerID)
		}

		if err := petMicrochipUnique(tx, p, p.ID); err != nil {
			return err
		}

		if err := tx.Save(p).Error; err != nil {
			return translateDup(err, "pet", "microchip_id", deref(p.MicrochipID))
		}
		return nil
	})
}

func (s *PetStore) SetPhotoURL(ctx context.Context, id uint, url string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Pet{}).
		Where("id = ?", id).
		Update("photo_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("pet", id)
	}
	return nil
}

// Delete cascades through the pet's appointments: their service join rows and
// invoices go first, then the appointments, then the pet. All in one
// transaction so a half-applied cascade is never observable.
func (s *PetStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var apIDs []uint
		if err := tx.Model(&models.Appointment{}).
			Where("pet_id = ?", id).
			Pluck("id", &apIDs).Error; err != nil {
			return err
		}

		if len(apIDs) > 0 {
			if err := tx.Where("appointment_id IN ?", apIDs).
				Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("appointment_id IN ?", apIDs).
				Delete(&models.AppointmentService{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pet_id = ?", id).
				Delete(&models.Appointment{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Pet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("pet", id)
		}
		return nil
	})
}

func petMicrochipUnique(tx *gorm.DB, p *models.Pet, excludeID uint) error {
	if p.MicrochipID == nil || *p.MicrochipID == "" {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Pet{}).
		Where("microchip_id = ? AND id <> ?", *p.MicrochipID, excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("pet", "microchip_id", *p.MicrochipID)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
