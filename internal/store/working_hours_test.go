package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

func TestWorkingHoursReplaceForVet(t *testing.T) {
	db := newTestDB(t)
	hours := NewWorkingHoursStore(db)
	ctx := context.Background()

	v := seedVet(t, db, "John", "Wambua", "LIC-2020-001")

	week := []models.WorkingHours{
		{Weekday: 1, StartTime: "09:00", EndTime: "17:00", Active: true},
		{Weekday: 2, StartTime: "09:00", EndTime: "17:00", Active: true},
	}
	require.NoError(t, hours.ReplaceForVet(ctx, v.ID, week))

	got, err := hours.ListForVet(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Weekday)

	// A replace swaps the whole week, not merges.
	require.NoError(t, hours.ReplaceForVet(ctx, v.ID, []models.WorkingHours{
		{Weekday: 5, StartTime: "10:00", EndTime: "14:00", Active: true},
	}))

	got, err = hours.ListForVet(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Weekday)
}

func TestWorkingHoursReplaceForVet_Validation(t *testing.T) {
	db := newTestDB(t)
	hours := NewWorkingHoursStore(db)
	ctx := context.Background()

	v := seedVet(t, db, "John", "Wambua", "LIC-2020-001")

	err := hours.ReplaceForVet(ctx, v.ID, []models.WorkingHours{{Weekday: 7}})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = hours.ReplaceForVet(ctx, 9999, []models.WorkingHours{{Weekday: 1}})
	assert.True(t, apperr.IsKind(err, apperr.KindReference))
}
