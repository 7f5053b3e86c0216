package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/audit"
	dbpkg "github.com/KaribuVetLabs/clinic-scheduler/internal/db"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
)

type fixtures struct {
	db    *gorm.DB
	repo  *store.AppointmentStore
	audit *audit.Dispatcher

	pet *models.Pet
	vet *models.Vet
}

func setup(t *testing.T) *fixtures {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	ctx := context.Background()

	owner := &models.Owner{FirstName: "Alice", LastName: "Ngugi", Phone: "+254700000001"}
	require.NoError(t, store.NewOwnerStore(db).Create(ctx, owner))

	pet := &models.Pet{OwnerID: owner.ID, Name: "Bella", Species: "dog"}
	require.NoError(t, store.NewPetStore(db).Create(ctx, pet))

	vet := &models.Vet{FirstName: "John", LastName: "Wambua", LicenseNumber: "LIC-2020-001"}
	require.NoError(t, store.NewVetStore(db).Create(ctx, vet))

	return &fixtures{
		db:    db,
		repo:  store.NewAppointmentStore(db),
		audit: audit.NewDispatcher(audit.New(db)),
		pet:   pet,
		vet:   vet,
	}
}

func TestBookAppointment(t *testing.T) {
	f := setup(t)
	uc := NewBookAppointment(f.repo, f.audit, nil)
	ctx := context.Background()

	slot := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	ap, err := uc.Execute(ctx, domain.BookingInput{
		PetID:       f.pet.ID,
		VetID:       f.vet.ID,
		ScheduledAt: slot,
		Reason:      "annual checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.NotZero(t, ap.ID)

	// The slot is now taken.
	_, err = uc.Execute(ctx, domain.BookingInput{
		PetID:       f.pet.ID,
		VetID:       f.vet.ID,
		ScheduledAt: slot,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestBookAppointment_InactiveVet(t *testing.T) {
	f := setup(t)
	uc := NewBookAppointment(f.repo, f.audit, nil)
	ctx := context.Background()

	f.vet.IsActive = false
	require.NoError(t, store.NewVetStore(f.db).Update(ctx, f.vet))

	_, err := uc.Execute(ctx, domain.BookingInput{
		PetID:       f.pet.ID,
		VetID:       f.vet.ID,
		ScheduledAt: time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestBookAppointment_UnknownVet(t *testing.T) {
	f := setup(t)
	uc := NewBookAppointment(f.repo, f.audit, nil)

	_, err := uc.Execute(context.Background(), domain.BookingInput{
		PetID:       f.pet.ID,
		VetID:       9999,
		ScheduledAt: time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindReference))
}

func TestCancelAppointment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	book := NewBookAppointment(f.repo, f.audit, nil)
	cancel := NewCancelAppointment(f.repo, f.audit, nil)

	ap, err := book.Execute(ctx, domain.BookingInput{
		PetID:       f.pet.ID,
		VetID:       f.vet.ID,
		ScheduledAt: time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	cancelled, err := cancel.Execute(ctx, ap.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)

	// A second cancel is a validation error, not a silent no-op.
	_, err = cancel.Execute(ctx, ap.ID, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Completing a cancelled booking is rejected too.
	complete := NewCompleteAppointment(f.repo, f.audit, nil)
	_, err = complete.Execute(ctx, ap.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestRescheduleAppointment_UseCase(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	book := NewBookAppointment(f.repo, f.audit, nil)
	reschedule := NewRescheduleAppointment(f.repo, f.audit, nil)

	slotA := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	slotB := time.Date(2025, 9, 20, 11, 0, 0, 0, time.UTC)

	first, err := book.Execute(ctx, domain.BookingInput{PetID: f.pet.ID, VetID: f.vet.ID, ScheduledAt: slotA})
	require.NoError(t, err)
	second, err := book.Execute(ctx, domain.BookingInput{PetID: f.pet.ID, VetID: f.vet.ID, ScheduledAt: slotB})
	require.NoError(t, err)

	_, err = reschedule.Execute(ctx, second.ID, slotA, nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	slotC := time.Date(2025, 9, 20, 15, 0, 0, 0, time.UTC)
	moved, err := reschedule.Execute(ctx, first.ID, slotC, nil)
	require.NoError(t, err)
	assert.True(t, moved.ScheduledAt.Equal(slotC))
}

func TestGetAvailability(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	service := &models.Service{Name: "Consultation", Price: 15.00, DurationMin: 30}
	require.NoError(t, store.NewServiceStore(f.db).Create(ctx, service))

	// 2025-09-20 is a Saturday.
	date := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.NewWorkingHoursStore(f.db).ReplaceForVet(ctx, f.vet.ID, []models.WorkingHours{
		{
			Weekday:    int(date.Weekday()),
			StartTime:  "09:00",
			EndTime:    "13:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
			Active:     true,
		},
	}))

	book := NewBookAppointment(f.repo, f.audit, nil)
	_, err := book.Execute(ctx, domain.BookingInput{
		PetID:       f.pet.ID,
		VetID:       f.vet.ID,
		ScheduledAt: time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	uc := NewGetAvailability(f.repo)
	slots, err := uc.Execute(ctx, AvailabilityInput{VetID: f.vet.ID, ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	// 09:00 through 11:30 minus the 10:00 booking; lunch is never offered.
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, starts)
}

func TestGetAvailability_CancelledBookingStillBlocksSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	service := &models.Service{Name: "Consultation", Price: 15.00, DurationMin: 30}
	require.NoError(t, store.NewServiceStore(f.db).Create(ctx, service))

	date := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.NewWorkingHoursStore(f.db).ReplaceForVet(ctx, f.vet.ID, []models.WorkingHours{
		{Weekday: int(date.Weekday()), StartTime: "09:00", EndTime: "11:00", Active: true},
	}))

	book := NewBookAppointment(f.repo, f.audit, nil)
	ap, err := book.Execute(ctx, domain.BookingInput{
		PetID:       f.pet.ID,
		VetID:       f.vet.ID,
		ScheduledAt: time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	cancel := NewCancelAppointment(f.repo, f.audit, nil)
	_, err = cancel.Execute(ctx, ap.ID, nil)
	require.NoError(t, err)

	// The cancelled row keeps its slot, so availability must not offer
	// 10:00 back only for the booking attempt to hit the slot conflict.
	uc := NewGetAvailability(f.repo)
	slots, err := uc.Execute(ctx, AvailabilityInput{VetID: f.vet.ID, ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:30"}, starts)
}

func TestGetAvailability_NoWorkingHours(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	service := &models.Service{Name: "Consultation", Price: 15.00, DurationMin: 30}
	require.NoError(t, store.NewServiceStore(f.db).Create(ctx, service))

	uc := NewGetAvailability(f.repo)
	slots, err := uc.Execute(ctx, AvailabilityInput{
		VetID:     f.vet.ID,
		ServiceID: service.ID,
		Date:      time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = uc.Execute(ctx, AvailabilityInput{VetID: f.vet.ID, ServiceID: 9999})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindReference))
}

func TestGetDaySchedule(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	book := NewBookAppointment(f.repo, f.audit, nil)
	morning := time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC)
	noon := time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)

	_, err := book.Execute(ctx, domain.BookingInput{PetID: f.pet.ID, VetID: f.vet.ID, ScheduledAt: noon})
	require.NoError(t, err)
	_, err = book.Execute(ctx, domain.BookingInput{PetID: f.pet.ID, VetID: f.vet.ID, ScheduledAt: morning})
	require.NoError(t, err)

	uc := NewGetDaySchedule(f.repo, nil, "UTC")
	details, err := uc.Execute(ctx, f.vet.ID, time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, "Bella", details[0].PetName)
	assert.Equal(t, "Alice Ngugi", details[0].OwnerName)
	assert.True(t, details[0].ScheduledAt.Before(details[1].ScheduledAt))

	// Another day is empty.
	empty, err := uc.Execute(ctx, f.vet.ID, time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
