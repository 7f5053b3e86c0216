package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/KaribuVetLabs/clinic-scheduler/internal/db"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

// newTestDB opens a private in-memory database per test. A single connection
// keeps the database alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func strPtr(s string) *string {
	return &s
}

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func seedOwner(t *testing.T, db *gorm.DB, first, last, phone string) *models.Owner {
	t.Helper()

	o := &models.Owner{FirstName: first, LastName: last, Phone: phone}
	require.NoError(t, NewOwnerStore(db).Create(context.Background(), o))
	return o
}

func seedPet(t *testing.T, db *gorm.DB, ownerID uint, name, species string) *models.Pet {
	t.Helper()

	p := &models.Pet{OwnerID: ownerID, Name: name, Species: species}
	require.NoError(t, NewPetStore(db).Create(context.Background(), p))
	return p
}

func seedVet(t *testing.T, db *gorm.DB, first, last, license string) *models.Vet {
	t.Helper()

	v := &models.Vet{FirstName: first, LastName: last, LicenseNumber: license}
	require.NoError(t, NewVetStore(db).Create(context.Background(), v))
	return v
}

func seedService(t *testing.T, db *gorm.DB, name string, price float64) *models.Service {
	t.Helper()

	sv := &models.Service{Name: name, Price: price}
	require.NoError(t, NewServiceStore(db).Create(context.Background(), sv))
	return sv
}

func seedAppointment(t *testing.T, db *gorm.DB, petID, vetID uint, at time.Time) *models.Appointment {
	t.Helper()

	ap := &models.Appointment{PetID: petID, VetID: vetID, ScheduledAt: at}
	require.NoError(t, NewAppointmentStore(db).CreateWithServices(context.Background(), ap, nil))
	return ap
}
