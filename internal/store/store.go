// Package store is the persistence and integrity layer. Every write runs in a
// transaction and enforces required fields, enum membership, uniqueness,
// foreign-key existence and the directional cascade/restrict delete policy
// explicitly, with unique indexes as the backstop for concurrent races.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
)

// emptyToNil folds a blank optional string to NULL so the partial unique
// indexes skip rows that simply have no value.
func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// translateDup converts a duplicate-key error raised by the store's unique
// indexes into a ConflictError. With TranslateError enabled this covers both
// the postgres and the sqlite (test) drivers.
func translateDup(err error, entity, field, value string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(entity, field, value)
	}
	return err
}

// rowExists checks that a referenced row is present. The check runs inside
// the caller's transaction so the reference cannot vanish mid-write.
func rowExists(tx *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// notFoundOr maps gorm's record-not-found onto the NotFoundError kind.
func notFoundOr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}
