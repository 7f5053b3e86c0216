package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func validateUser(u *models.User) error {
	if strings.TrimSpace(u.Username) == "" {
		return apperr.Validation("user", "username", "required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return apperr.Validation("user", "name", "required")
	}
	// Only the hash ever reaches the store; plaintext never does.
	if u.PasswordHash == "" {
		return apperr.Validation("user", "password", "required")
	}
	if u.Role == "" {
		u.Role = models.RoleReception
	}
	switch u.Role {
	case models.RoleAdmin, models.RoleReception, models.RoleVet, models.RoleAccountant:
	default:
		return apperr.Validation("user", "role", "unknown role")
	}
	u.Email = emptyToNil(u.Email)
	return nil
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if err := validateUser(u); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := userUniqueness(tx, u, 0); err != nil {
			return err
		}
		if err := tx.Create(u).Error; err != nil {
			return translateDup(err, "user", "username", u.Username)
		}
		return nil
	})
}

func (s *UserStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, notFoundOr(err, "user", 0)
	}
	return &u, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Order("username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	if err := validateUser(u); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &models.User{}, u.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("user", u.ID)
		}

		if err := userUniqueness(tx, u, u.ID); err != nil {
			return err
		}

		if err := tx.Save(u).Error; err != nil {
			return translateDup(err, "user", "username", u.Username)
		}
		return nil
	})
}

func (s *UserStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}

func userUniqueness(tx *gorm.DB, u *models.User, excludeID uint) error {
	var count int64
	if err := tx.Model(&models.User{}).
		Where("username = ? AND id <> ?", u.Username, excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("user", "username", u.Username)
	}

	if u.Email != nil {
		if err := tx.Model(&models.User{}).
			Where("email = ? AND id <> ?", *u.Email, excludeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("user", "email", *u.Email)
		}
	}
	return nil
}
