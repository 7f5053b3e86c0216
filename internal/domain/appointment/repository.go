package appointment

import (
	"context"
	"time"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/dto"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Vet --------
	GetVet(
		ctx context.Context,
		id uint,
	) (*models.Vet, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Appointment (create / collision) --------
	CreateWithServices(
		ctx context.Context,
		ap *models.Appointment,
		lines []ServiceLine,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Reschedule(
		ctx context.Context,
		id uint,
		scheduledAt time.Time,
	) (*models.Appointment, error)

	// -------- Schedule reads --------
	ListDetailsForVetDay(
		ctx context.Context,
		vetID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]dto.AppointmentDetailDTO, error)

	GetWorkingHours(
		ctx context.Context,
		vetID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		vetID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
