package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/validators"
)

type OwnerStore struct {
	db *gorm.DB
}

func NewOwnerStore(db *gorm.DB) *OwnerStore {
	return &OwnerStore{db: db}
}

func validateOwner(o *models.Owner) error {
	if strings.TrimSpace(o.FirstName) == "" {
		return apperr.Validation("owner", "first_name", "required")
	}
	if strings.TrimSpace(o.LastName) == "" {
		return apperr.Validation("owner", "last_name", "required")
	}
	if strings.TrimSpace(o.Phone) == "" {
		return apperr.Validation("owner", "phone", "required")
	}
	if !validators.IsPhoneValid(o.Phone) {
		return apperr.Validation("owner", "phone", "malformed phone number")
	}
	return nil
}

func (s *OwnerStore) Create(ctx context.Context, o *models.Owner) error {
	if err := validateOwner(o); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownerUniqueness(tx, o, 0); err != nil {
			return err
		}
		if err := tx.Create(o).Error; err != nil {
			return translateDup(err, "owner", "phone", o.Phone)
		}
		return nil
	})
}

func (s *OwnerStore) Get(ctx context.Context, id uint) (*models.Owner, error) {
	var o models.Owner
	if err := s.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, notFoundOr(err, "owner", id)
	}
	return &o, nil
}

func (s *OwnerStore) List(ctx context.Context, query string) ([]models.Owner, error) {
	q := s.db.WithContext(ctx).Model(&models.Owner{})

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var owners []models.Owner
	if err := q.Order("created_at DESC").Find(&owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

func (s *OwnerStore) Update(ctx context.Context, o *models.Owner) error {
	if err := validateOwner(o); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &models.Owner{}, o.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("owner", o.ID)
		}

		if err := ownerUniqueness(tx, o, o.ID); err != nil {
			return err
		}

		if err := tx.Save(o).Error; err != nil {
			return translateDup(err, "owner", "phone", o.Phone)
		}
		return nil
	})
}

// Delete is restricted while the owner still has pets.
func (s *OwnerStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pets int64
		if err := tx.Model(&models.Pet{}).Where("owner_id = ?", id).Count(&pets).Error; err != nil {
			return err
		}
		if pets > 0 {
			return apperr.Dependency("owner", "pet")
		}

		res := tx.Delete(&models.Owner{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("owner", id)
		}
		return nil
	})
}

// ownerUniqueness pre-checks phone and email so conflicts carry the offending
// field; excludeID skips the record's own row on update.
func ownerUniqueness(tx *gorm.DB, o *models.Owner, excludeID uint) error {
	var count int64
	if err := tx.Model(&models.Owner{}).
		Where("phone = ? AND id <> ?", o.Phone, excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("owner", "phone", o.Phone)
	}

	if o.Email != nil && *o.Email != "" {
		if err := tx.Model(&models.Owner{}).
			Where("email = ? AND id <> ?", *o.Email, excludeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("owner", "email", *o.Email)
		}
	}
	return nil
}
