package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

func TestOwnerCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	owners := NewOwnerStore(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		owner models.Owner
		field string
	}{
		{"missing first name", models.Owner{LastName: "Ngugi", Phone: "+254700000001"}, "first_name"},
		{"missing last name", models.Owner{FirstName: "Alice", Phone: "+254700000001"}, "last_name"},
		{"missing phone", models.Owner{FirstName: "Alice", LastName: "Ngugi"}, "phone"},
		{"malformed phone", models.Owner{FirstName: "Alice", LastName: "Ngugi", Phone: "not-a-phone"}, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := owners.Create(ctx, &tt.owner)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))

			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.field, ae.Field)
		})
	}
}

func TestOwnerCreate_PhoneConflict(t *testing.T) {
	db := newTestDB(t)
	owners := NewOwnerStore(db)
	ctx := context.Background()

	seedOwner(t, db, "Alice", "Ngugi", "+254700000001")

	dup := &models.Owner{FirstName: "Bob", LastName: "Otieno", Phone: "+254700000001"}
	err := owners.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestOwnerCreate_EmailConflict(t *testing.T) {
	db := newTestDB(t)
	owners := NewOwnerStore(db)
	ctx := context.Background()

	first := &models.Owner{
		FirstName: "Alice", LastName: "Ngugi",
		Phone: "+254700000001",
		Email: strPtr("alice@example.com"),
	}
	require.NoError(t, owners.Create(ctx, first))

	dup := &models.Owner{
		FirstName: "Bob", LastName: "Otieno",
		Phone: "+254700000002",
		Email: strPtr("alice@example.com"),
	}
	err := owners.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Owners without email never collide with each other.
	third := &models.Owner{FirstName: "Carol", LastName: "Wanjiru", Phone: "+254700000003"}
	require.NoError(t, owners.Create(ctx, third))
	fourth := &models.Owner{FirstName: "David", LastName: "Mwangi", Phone: "+254700000004"}
	require.NoError(t, owners.Create(ctx, fourth))
}

func TestOwnerUpdate_KeepsOwnPhone(t *testing.T) {
	db := newTestDB(t)
	owners := NewOwnerStore(db)
	ctx := context.Background()

	o := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")

	o.Address = "12 Riverside Drive, Nairobi"
	require.NoError(t, owners.Update(ctx, o))

	got, err := owners.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 Riverside Drive, Nairobi", got.Address)
	assert.Equal(t, "+254700000001", got.Phone)
}

func TestOwnerDelete_RestrictedWithPets(t *testing.T) {
	db := newTestDB(t)
	owners := NewOwnerStore(db)
	ctx := context.Background()

	o := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")
	p := seedPet(t, db, o.ID, "Bella", "dog")

	err := owners.Delete(ctx, o.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindDependency))

	// Still there.
	_, err = owners.Get(ctx, o.ID)
	require.NoError(t, err)

	// Deleting the pet first unblocks the owner.
	require.NoError(t, NewPetStore(db).Delete(ctx, p.ID))
	require.NoError(t, owners.Delete(ctx, o.ID))

	_, err = owners.Get(ctx, o.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOwnerDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewOwnerStore(db).Delete(context.Background(), 9999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOwnerList_Search(t *testing.T) {
	db := newTestDB(t)
	owners := NewOwnerStore(db)
	ctx := context.Background()

	seedOwner(t, db, "Alice", "Ngugi", "+254700000001")
	seedOwner(t, db, "Bob", "Otieno", "+254700000002")

	got, err := owners.List(ctx, "ngugi")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice Ngugi", got[0].FullName())

	all, err := owners.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
