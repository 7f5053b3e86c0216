package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httpresp"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
)

type VetHandler struct {
	vets  *store.VetStore
	hours *store.WorkingHoursStore
}

func NewVetHandler(vets *store.VetStore, hours *store.WorkingHoursStore) *VetHandler {
	return &VetHandler{vets: vets, hours: hours}
}

type VetRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	LicenseNumber  string `json:"license_number" binding:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"required,email"`
	Specialization string `json:"specialization"`
	IsActive       *bool  `json:"is_active"`
}

func (h *VetHandler) Create(c *gin.Context) {
	var req VetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	vet := models.Vet{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		LicenseNumber:  strings.TrimSpace(req.LicenseNumber),
		Phone:          req.Phone,
		Email:          &email,
		Specialization: req.Specialization,
		IsActive:       true,
	}
	if req.IsActive != nil {
		vet.IsActive = *req.IsActive
	}

	if err := h.vets.Create(c.Request.Context(), &vet); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, vet)
}

func (h *VetHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	vet, err := h.vets.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, vet)
}

func (h *VetHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	vets, err := h.vets.List(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.Internal(c, "failed_to_list_vets", "Could not list vets.")
		return
	}

	httpresp.List(c, vets)
}

func (h *VetHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req VetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	vet, err := h.vets.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	vet.FirstName = strings.TrimSpace(req.FirstName)
	vet.LastName = strings.TrimSpace(req.LastName)
	vet.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
	vet.Phone = req.Phone
	email := strings.ToLower(strings.TrimSpace(req.Email))
	vet.Email = &email
	vet.Specialization = req.Specialization
	if req.IsActive != nil {
		vet.IsActive = *req.IsActive
	}

	if err := h.vets.Update(c.Request.Context(), vet); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, vet)
}

func (h *VetHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if err := h.vets.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// WORKING HOURS
// ======================================================

type WorkingHoursRequest struct {
	Hours []models.WorkingHours `json:"hours" binding:"required"`
}

func (h *VetHandler) GetWorkingHours(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	hours, err := h.hours.ListForVet(c.Request.Context(), id)
	if err != nil {
		httperr.Internal(c, "failed_to_list_working_hours", "Could not load working hours.")
		return
	}

	httpresp.List(c, hours)
}

func (h *VetHandler) PutWorkingHours(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := h.hours.ReplaceForVet(c.Request.Context(), id, req.Hours); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"updated": len(req.Hours)})
}
