package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httpresp"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
)

type ServiceHandler struct {
	services *store.ServiceStore
}

func NewServiceHandler(services *store.ServiceStore) *ServiceHandler {
	return &ServiceHandler{services: services}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
	}

	if err := h.services.Create(c.Request.Context(), &service); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	service, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	service, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	service.Name = strings.TrimSpace(req.Name)
	service.Description = req.Description
	service.Price = req.Price
	service.DurationMin = req.DurationMin

	if err := h.services.Update(c.Request.Context(), service); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}
