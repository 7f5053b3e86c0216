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

// End-to-end walk through a typical clinic day: registration, booking with
// service lines, the denormalized detail read, and invoicing.
func TestClinicDayFlow(t *testing.T) {
	db := newTestDB(t)
	store := NewAppointmentStore(db)
	ctx := context.Background()

	alice := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")
	bella := seedPet(t, db, alice.ID, "Bella", "dog")
	wambua := seedVet(t, db, "John", "Wambua", "LIC-2020-001")
	consult := seedService(t, db, "Consultation", 15.00)
	vaccine := seedService(t, db, "Rabies Vaccination", 25.00)

	slot := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		PetID:       bella.ID,
		VetID:       wambua.ID,
		ScheduledAt: slot,
		Reason:      "annual checkup",
	}
	require.NoError(t, store.CreateWithServices(ctx, ap, []domain.ServiceLine{
		{ServiceID: consult.ID, Quantity: 1},
		{ServiceID: vaccine.ID, Quantity: 1},
	}))

	// A second booking for the same vet and datetime loses.
	rex := seedPet(t, db, alice.ID, "Rex", "dog")
	clash := &models.Appointment{PetID: rex.ID, VetID: wambua.ID, ScheduledAt: slot}
	err := store.CreateWithServices(ctx, clash, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	detail, err := store.GetDetail(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, detail.AppointmentID)
	assert.Equal(t, "Bella", detail.PetName)
	assert.Equal(t, "dog", detail.PetSpecies)
	assert.Equal(t, "Alice Ngugi", detail.OwnerName)
	assert.Equal(t, "John Wambua", detail.VetName)
	assert.Equal(t, string(domain.StatusScheduled), detail.Status)
	assert.Equal(t, "annual checkup", detail.Reason)

	invoices := NewInvoiceStore(db)
	inv := &models.Invoice{
		AppointmentID: ap.ID,
		InvoiceNumber: "INV-20250920-0001",
		TotalAmount:   40.00,
		TaxAmount:     6.40,
	}
	require.NoError(t, invoices.Create(ctx, inv))

	// The appointment is already invoiced.
	second := &models.Invoice{AppointmentID: ap.ID, InvoiceNumber: "INV-20250920-0002", TotalAmount: 40.00}
	err = invoices.Create(ctx, second)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestGetDetail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewAppointmentStore(db).GetDetail(context.Background(), 9999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListDetailsForVetDay(t *testing.T) {
	db := newTestDB(t)
	store := NewAppointmentStore(db)
	ctx := context.Background()

	alice := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")
	bella := seedPet(t, db, alice.ID, "Bella", "dog")
	simba := seedPet(t, db, alice.ID, "Simba", "cat")
	wambua := seedVet(t, db, "John", "Wambua", "LIC-2020-001")

	day := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	seedAppointment(t, db, bella.ID, wambua.ID, day.Add(11*time.Hour))
	seedAppointment(t, db, simba.ID, wambua.ID, day.Add(9*time.Hour))
	seedAppointment(t, db, bella.ID, wambua.ID, day.AddDate(0, 0, 1).Add(9*time.Hour))

	details, err := store.ListDetailsForVetDay(ctx, wambua.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, details, 2)

	// Ordered by time, not insertion.
	assert.Equal(t, "Simba", details[0].PetName)
	assert.Equal(t, "Bella", details[1].PetName)
}
