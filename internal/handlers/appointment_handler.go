package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/config"
	domain "github.com/KaribuVetLabs/clinic-scheduler/internal/domain/appointment"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httpresp"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/middleware"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
	ucAppointment "github.com/KaribuVetLabs/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	cfg   *config.Config
	store *store.AppointmentStore

	bookUC       *ucAppointment.BookAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	cancelUC     *ucAppointment.CancelAppointment
	completeUC   *ucAppointment.CompleteAppointment
	noShowUC     *ucAppointment.MarkNoShow
	scheduleUC   *ucAppointment.GetDaySchedule
	availableUC  *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	cfg *config.Config,
	st *store.AppointmentStore,
	bookUC *ucAppointment.BookAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	noShowUC *ucAppointment.MarkNoShow,
	scheduleUC *ucAppointment.GetDaySchedule,
	availableUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		cfg:          cfg,
		store:        st,
		bookUC:       bookUC,
		rescheduleUC: rescheduleUC,
		cancelUC:     cancelUC,
		completeUC:   completeUC,
		noShowUC:     noShowUC,
		scheduleUC:   scheduleUC,
		availableUC:  availableUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceLineRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type BookAppointmentRequest struct {
	PetID       uint                 `json:"pet_id" binding:"required"`
	VetID       uint                 `json:"vet_id" binding:"required"`
	ScheduledAt string               `json:"scheduled_at" binding:"required"`
	Reason      string               `json:"reason"`
	Notes       string               `json:"notes"`
	Services    []ServiceLineRequest `json:"services"`
}

type RescheduleRequest struct {
	ScheduledAt string `json:"scheduled_at" binding:"required"`
}

type AppointmentFieldsRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	at, err := parseClinicTime(h.cfg, req.ScheduledAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_scheduled_at", "Datetime must be YYYY-MM-DDTHH:MM:SS.")
		return
	}

	lines := make([]domain.ServiceLine, 0, len(req.Services))
	for _, s := range req.Services {
		lines = append(lines, domain.ServiceLine{
			ServiceID: s.ServiceID,
			Quantity:  s.Quantity,
		})
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), domain.BookingInput{
		PetID:       req.PetID,
		VetID:       req.VetID,
		ScheduledAt: at,
		Reason:      req.Reason,
		Notes:       req.Notes,
		CreatedBy:   &userID,
		Services:    lines,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	ap, err := h.store.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) GetDetail(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	detail, err := h.store.GetDetail(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, detail)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	var f store.ListFilter

	if v := c.Query("pet_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_pet_id", "Invalid pet_id.")
			return
		}
		f.PetID = uint(id)
	}
	if v := c.Query("vet_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_vet_id", "Invalid vet_id.")
			return
		}
		f.VetID = uint(id)
	}
	if v := c.Query("status"); v != "" {
		if !domain.IsValidStatus(v) {
			httperr.BadRequest(c, "invalid_status", "Unknown status.")
			return
		}
		f.Status = v
	}
	if v := c.Query("from"); v != "" {
		t, err := parseClinicTime(h.cfg, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Datetime must be YYYY-MM-DDTHH:MM:SS.")
			return
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseClinicTime(h.cfg, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Datetime must be YYYY-MM-DDTHH:MM:SS.")
			return
		}
		f.To = &t
	}

	apps, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) DaySchedule(c *gin.Context) {
	vetID, err := strconv.ParseUint(c.Query("vet_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_vet_id", "vet_id is required.")
		return
	}

	date, err := parseClinicDate(h.cfg, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	details, err := h.scheduleUC.Execute(c.Request.Context(), uint(vetID), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, details)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	vetID, err := strconv.ParseUint(c.Query("vet_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_vet_id", "vet_id is required.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id is required.")
		return
	}

	date, err := parseClinicDate(h.cfg, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availableUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		VetID:     uint(vetID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) UpdateFields(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req AppointmentFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.store.UpdateFields(c.Request.Context(), id, req.Reason, req.Notes)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	at, err := parseClinicTime(h.cfg, req.ScheduledAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_scheduled_at", "Datetime must be YYYY-MM-DDTHH:MM:SS.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), id, at, &userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancelUC.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.completeUC.Execute)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, h.noShowUC.Execute)
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	exec func(ctx context.Context, id uint, userID *uint) (*models.Appointment, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	ap, err := exec(c.Request.Context(), id, &userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}
