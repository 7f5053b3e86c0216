package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httpresp"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
)

type OwnerHandler struct {
	owners *store.OwnerStore
}

func NewOwnerHandler(owners *store.OwnerStore) *OwnerHandler {
	return &OwnerHandler{owners: owners}
}

type OwnerRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Email     *string `json:"email"`
	Address   string  `json:"address"`
}

func (h *OwnerHandler) Create(c *gin.Context) {
	var req OwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	owner := models.Owner{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     req.Email,
		Address:   req.Address,
	}

	if err := h.owners.Create(c.Request.Context(), &owner); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, owner)
}

func (h *OwnerHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	owner, err := h.owners.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, owner)
}

func (h *OwnerHandler) List(c *gin.Context) {
	owners, err := h.owners.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_owners", "Could not list owners.")
		return
	}

	httpresp.List(c, owners)
}

func (h *OwnerHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req OwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	owner, err := h.owners.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	owner.FirstName = strings.TrimSpace(req.FirstName)
	owner.LastName = strings.TrimSpace(req.LastName)
	owner.Phone = strings.TrimSpace(req.Phone)
	owner.Email = req.Email
	owner.Address = req.Address

	if err := h.owners.Update(c.Request.Context(), owner); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, owner)
}

func (h *OwnerHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if err := h.owners.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

func paramID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
