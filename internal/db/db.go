package db

import (
	"log"
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/config"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Owner{},
		&models.Vet{},
		&models.Pet{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Invoice{},
		&models.User{},
		&models.WorkingHours{},
		&models.AuditLog{},
	)
}
