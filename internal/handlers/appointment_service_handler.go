package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httpresp"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
)

// Service lines of an existing appointment.

type AppointmentServiceHandler struct {
	store *store.AppointmentStore
}

func NewAppointmentServiceHandler(st *store.AppointmentStore) *AppointmentServiceHandler {
	return &AppointmentServiceHandler{store: st}
}

type AddServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *AppointmentServiceHandler) Add(c *gin.Context) {
	apID, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	row, err := h.store.AddService(c.Request.Context(), apID, req.ServiceID, req.Quantity)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, row)
}

func (h *AppointmentServiceHandler) List(c *gin.Context) {
	apID, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	rows, err := h.store.ListServices(c.Request.Context(), apID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list appointment services.")
		return
	}

	httpresp.List(c, rows)
}

func (h *AppointmentServiceHandler) UpdateQuantity(c *gin.Context) {
	apID, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("serviceID"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := h.store.UpdateServiceQuantity(
		c.Request.Context(), apID, uint(serviceID), req.Quantity,
	); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"quantity": req.Quantity})
}

func (h *AppointmentServiceHandler) Remove(c *gin.Context) {
	apID, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Param("serviceID"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	if err := h.store.RemoveService(c.Request.Context(), apID, uint(serviceID)); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}
