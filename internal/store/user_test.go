package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

func TestUserCreate_UsernameConflict(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	first := &models.User{Username: "reception1", Name: "Faith Njeri", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, first))
	assert.Equal(t, models.RoleReception, first.Role)

	dup := &models.User{Username: "reception1", Name: "Someone Else", PasswordHash: "y"}
	err := users.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUserEmail_UniqueIndexBackstop(t *testing.T) {
	db := newTestDB(t)

	first := &models.User{
		Username: "reception1", Name: "Faith Njeri", PasswordHash: "x",
		Email: strPtr("dup@clinic.example"),
	}
	require.NoError(t, db.Create(first).Error)

	second := &models.User{
		Username: "reception2", Name: "Brian Otieno", PasswordHash: "y",
		Email: strPtr("dup@clinic.example"),
	}
	require.ErrorIs(t, db.Create(second).Error, gorm.ErrDuplicatedKey)

	// NULL emails coexist.
	require.NoError(t, db.Create(&models.User{Username: "vet1", Name: "V", PasswordHash: "z"}).Error)
	require.NoError(t, db.Create(&models.User{Username: "vet2", Name: "W", PasswordHash: "z"}).Error)
}

func TestUserCreate_RoleValidation(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	bad := &models.User{Username: "x1", Name: "X", PasswordHash: "h", Role: "superuser"}
	err := users.Create(ctx, bad)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	for _, role := range []string{models.RoleAdmin, models.RoleReception, models.RoleVet, models.RoleAccountant} {
		u := &models.User{Username: "user_" + role, Name: "U", PasswordHash: "h", Role: role}
		require.NoError(t, users.Create(ctx, u))
	}
}

func TestUserGetByUsernameAndCount(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	u := &models.User{Username: "admin", Name: "Clinic Admin", PasswordHash: "h", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetByUsername(ctx, "ghost")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	n, err = users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
