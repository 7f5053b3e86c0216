package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

func TestPetCreate_OwnerMustExist(t *testing.T) {
	db := newTestDB(t)
	pets := NewPetStore(db)

	p := &models.Pet{OwnerID: 9999, Name: "Bella", Species: "dog"}
	err := pets.Create(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindReference))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "owner", ae.Entity)
	assert.Equal(t, "owner_id", ae.Field)
}

func TestPetCreate_GenderDefaultsToUnknown(t *testing.T) {
	db := newTestDB(t)
	pets := NewPetStore(db)
	ctx := context.Background()

	o := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")

	p := &models.Pet{OwnerID: o.ID, Name: "Bella", Species: "dog"}
	require.NoError(t, pets.Create(ctx, p))

	got, err := pets.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GenderUnknown, got.Gender)

	bad := &models.Pet{OwnerID: o.ID, Name: "Rex", Species: "dog", Gender: "other"}
	err = pets.Create(ctx, bad)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestPetCreate_MicrochipConflict(t *testing.T) {
	db := newTestDB(t)
	pets := NewPetStore(db)
	ctx := context.Background()

	o := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")

	first := &models.Pet{OwnerID: o.ID, Name: "Bella", Species: "dog", MicrochipID: strPtr("985112003456789")}
	require.NoError(t, pets.Create(ctx, first))

	dup := &models.Pet{OwnerID: o.ID, Name: "Rex", Species: "dog", MicrochipID: strPtr("985112003456789")}
	err := pets.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Unchipped pets never collide.
	a := &models.Pet{OwnerID: o.ID, Name: "Simba", Species: "cat"}
	require.NoError(t, pets.Create(ctx, a))
	b := &models.Pet{OwnerID: o.ID, Name: "Nala", Species: "cat"}
	require.NoError(t, pets.Create(ctx, b))
}

func TestPetDelete_CascadesAppointments(t *testing.T) {
	db := newTestDB(t)
	pets := NewPetStore(db)
	ctx := context.Background()

	o := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")
	p := seedPet(t, db, o.ID, "Bella", "dog")
	v := seedVet(t, db, "John", "Wambua", "LIC-2020-001")
	sv := seedService(t, db, "Consultation", 15.00)

	slot := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{PetID: p.ID, VetID: v.ID, ScheduledAt: slot}
	require.NoError(t, NewAppointmentStore(db).CreateWithServices(ctx, ap, []domain.ServiceLine{{ServiceID: sv.ID, Quantity: 1}}))

	inv := &models.Invoice{AppointmentID: ap.ID, InvoiceNumber: "INV-20250920-0001", TotalAmount: 15.00}
	require.NoError(t, NewInvoiceStore(db).Create(ctx, inv))

	require.NoError(t, pets.Delete(ctx, p.ID))

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Where("pet_id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.AppointmentService{}).Where("appointment_id = ?", ap.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Invoice{}).Where("appointment_id = ?", ap.ID).Count(&count).Error)
	assert.Zero(t, count)

	// The catalog service and the vet survive the cascade.
	_, err := NewServiceStore(db).Get(ctx, sv.ID)
	require.NoError(t, err)
	_, err = NewVetStore(db).Get(ctx, v.ID)
	require.NoError(t, err)
}

func TestPetSetPhotoURL(t *testing.T) {
	db := newTestDB(t)
	pets := NewPetStore(db)
	ctx := context.Background()

	o := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")
	p := seedPet(t, db, o.ID, "Bella", "dog")

	require.NoError(t, pets.SetPhotoURL(ctx, p.ID, "https://cdn.example.com/pets/1/photo.webp"))

	got, err := pets.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pets/1/photo.webp", got.PhotoURL)

	err = pets.SetPhotoURL(ctx, 9999, "x")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
