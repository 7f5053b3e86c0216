package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/audit"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/cache"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/config"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/handlers"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/middleware"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/payments"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/storage"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
	ucAppointment "github.com/KaribuVetLabs/clinic-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	ownerStore := store.NewOwnerStore(db)
	petStore := store.NewPetStore(db)
	vetStore := store.NewVetStore(db)
	serviceStore := store.NewServiceStore(db)
	appointmentStore := store.NewAppointmentStore(db)
	invoiceStore := store.NewInvoiceStore(db)
	userStore := store.NewUserStore(db)
	workingHoursStore := store.NewWorkingHoursStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	scheduleCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.ClinicTimezone)
	photoStorage := storage.New(cfg)

	checkout, err := payments.New(cfg.MercadoPagoToken)
	if err != nil {
		log.Printf("payments disabled: %v", err)
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentStore,
		auditDispatcher,
		scheduleCache,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentStore,
		auditDispatcher,
		scheduleCache,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentStore,
		auditDispatcher,
		scheduleCache,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentStore,
		auditDispatcher,
		scheduleCache,
	)

	noShowUC := ucAppointment.NewMarkNoShow(
		appointmentStore,
		auditDispatcher,
		scheduleCache,
	)

	scheduleUC := ucAppointment.NewGetDaySchedule(
		appointmentStore,
		scheduleCache,
		cfg.ClinicTimezone,
	)

	availableUC := ucAppointment.NewGetAvailability(appointmentStore)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userStore, cfg)
	ownerHandler := handlers.NewOwnerHandler(ownerStore)
	petHandler := handlers.NewPetHandler(petStore, photoStorage)
	vetHandler := handlers.NewVetHandler(vetStore, workingHoursStore)
	serviceHandler := handlers.NewServiceHandler(serviceStore)

	appointmentHandler := handlers.NewAppointmentHandler(
		cfg,
		appointmentStore,
		bookUC,
		rescheduleUC,
		cancelUC,
		completeUC,
		noShowUC,
		scheduleUC,
		availableUC,
	)

	appointmentServiceHandler := handlers.NewAppointmentServiceHandler(appointmentStore)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceStore, checkout, auditDispatcher)
	userHandler := handlers.NewUserHandler(userStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// OWNERS
			// ------------------------------
			secured.POST("/owners", ownerHandler.Create)
			secured.GET("/owners", ownerHandler.List)
			secured.GET("/owners/:id", ownerHandler.Get)
			secured.PATCH("/owners/:id", ownerHandler.Update)
			secured.DELETE("/owners/:id", ownerHandler.Delete)

			// ------------------------------
			// PETS
			// ------------------------------
			secured.POST("/pets", petHandler.Create)
			secured.GET("/pets", petHandler.List)
			secured.GET("/pets/:id", petHandler.Get)
			secured.PATCH("/pets/:id", petHandler.Update)
			secured.DELETE("/pets/:id", petHandler.Delete)
			secured.POST("/pets/:id/photo", petHandler.UploadPhoto)

			// ------------------------------
			// VETS
			// ------------------------------
			secured.POST("/vets", vetHandler.Create)
			secured.GET("/vets", vetHandler.List)
			secured.GET("/vets/:id", vetHandler.Get)
			secured.PATCH("/vets/:id", vetHandler.Update)
			secured.DELETE("/vets/:id", vetHandler.Delete)
			secured.GET("/vets/:id/working-hours", vetHandler.GetWorkingHours)
			secured.PUT("/vets/:id/working-hours", vetHandler.PutWorkingHours)

			// ------------------------------
			// SERVICES (CATALOG)
			// ------------------------------
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/schedule", appointmentHandler.DaySchedule)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/:id/detail", appointmentHandler.GetDetail)
			secured.PATCH("/appointments/:id", appointmentHandler.UpdateFields)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.POST("/appointments/:id/services", appointmentServiceHandler.Add)
			secured.GET("/appointments/:id/services", appointmentServiceHandler.List)
			secured.PATCH("/appointments/:id/services/:serviceID", appointmentServiceHandler.UpdateQuantity)
			secured.DELETE("/appointments/:id/services/:serviceID", appointmentServiceHandler.Remove)

			// ------------------------------
			// INVOICES
			// ------------------------------
			invoices := secured.Group("/invoices")
			invoices.Use(middleware.RequireRole(models.RoleReception, models.RoleAccountant))
			{
				invoices.POST("", invoiceHandler.Create)
				invoices.GET("", invoiceHandler.List)
				invoices.GET("/:id", invoiceHandler.Get)
				invoices.PATCH("/:id", invoiceHandler.Update)
				invoices.PATCH("/:id/paid", invoiceHandler.MarkPaid)
				invoices.DELETE("/:id", invoiceHandler.Delete)
				invoices.POST("/:id/checkout", invoiceHandler.CreateCheckout)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/users", userHandler.Create)
				admin.GET("/users", userHandler.List)
				admin.GET("/users/:id", userHandler.Get)
				admin.PATCH("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
