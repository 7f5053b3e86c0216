package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

func invoiceFixtures(t *testing.T) (context.Context, *InvoiceStore, *models.Appointment, *models.Appointment) {
	t.Helper()

	db := newTestDB(t)
	ctx := context.Background()

	o := seedOwner(t, db, "Alice", "Ngugi", "+254700000001")
	p := seedPet(t, db, o.ID, "Bella", "dog")
	v := seedVet(t, db, "John", "Wambua", "LIC-2020-001")

	day := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	first := seedAppointment(t, db, p.ID, v.ID, day.Add(10*time.Hour))
	second := seedAppointment(t, db, p.ID, v.ID, day.Add(11*time.Hour))

	return ctx, NewInvoiceStore(db), first, second
}

func TestInvoiceCreate_OnePerAppointment(t *testing.T) {
	ctx, invoices, first, second := invoiceFixtures(t)

	inv := &models.Invoice{AppointmentID: first.ID, InvoiceNumber: "INV-20250920-0001", TotalAmount: 40.00, TaxAmount: 6.40}
	require.NoError(t, invoices.Create(ctx, inv))

	// Second invoice for the same appointment.
	dup := &models.Invoice{AppointmentID: first.ID, InvoiceNumber: "INV-20250920-0002", TotalAmount: 40.00}
	err := invoices.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "appointment_id", ae.Field)

	// Reused invoice number on a different appointment.
	reused := &models.Invoice{AppointmentID: second.ID, InvoiceNumber: "INV-20250920-0001", TotalAmount: 10.00}
	err = invoices.Create(ctx, reused)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestInvoiceCreate_Validation(t *testing.T) {
	ctx, invoices, first, _ := invoiceFixtures(t)

	err := invoices.Create(ctx, &models.Invoice{AppointmentID: first.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = invoices.Create(ctx, &models.Invoice{AppointmentID: first.ID, InvoiceNumber: "INV-X", TotalAmount: -1})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = invoices.Create(ctx, &models.Invoice{AppointmentID: 9999, InvoiceNumber: "INV-X"})
	assert.True(t, apperr.IsKind(err, apperr.KindReference))
}

func TestInvoiceMarkPaid(t *testing.T) {
	ctx, invoices, first, _ := invoiceFixtures(t)

	inv := &models.Invoice{AppointmentID: first.ID, InvoiceNumber: "INV-20250920-0001", TotalAmount: 40.00}
	require.NoError(t, invoices.Create(ctx, inv))

	paidAt := time.Date(2025, 9, 21, 9, 0, 0, 0, time.UTC)
	paid, err := invoices.MarkPaid(ctx, inv.ID, paidAt)
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.PaidAt)
	assert.True(t, paid.PaidAt.Equal(paidAt))

	// Paying twice is rejected without touching the stored timestamp.
	_, err = invoices.MarkPaid(ctx, inv.ID, paidAt.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	got, err := invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAt.Equal(paidAt))
}

func TestInvoiceList_UnpaidOnly(t *testing.T) {
	ctx, invoices, first, second := invoiceFixtures(t)

	a := &models.Invoice{AppointmentID: first.ID, InvoiceNumber: "INV-20250920-0001", TotalAmount: 40.00}
	require.NoError(t, invoices.Create(ctx, a))
	b := &models.Invoice{AppointmentID: second.ID, InvoiceNumber: "INV-20250920-0002", TotalAmount: 25.00}
	require.NoError(t, invoices.Create(ctx, b))

	_, err := invoices.MarkPaid(ctx, a.ID, time.Now())
	require.NoError(t, err)

	unpaid, err := invoices.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, b.ID, unpaid[0].ID)

	all, err := invoices.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInvoiceGetByAppointment(t *testing.T) {
	ctx, invoices, first, second := invoiceFixtures(t)

	inv := &models.Invoice{AppointmentID: first.ID, InvoiceNumber: "INV-20250920-0001", TotalAmount: 40.00}
	require.NoError(t, invoices.Create(ctx, inv))

	got, err := invoices.GetByAppointment(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	_, err = invoices.GetByAppointment(ctx, second.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
