package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httpresp"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/storage"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
)

type PetHandler struct {
	pets   *store.PetStore
	photos *storage.PhotoStorage
}

func NewPetHandler(pets *store.PetStore, photos *storage.PhotoStorage) *PetHandler {
	return &PetHandler{pets: pets, photos: photos}
}

type PetRequest struct {
	OwnerID     uint    `json:"owner_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Species     string  `json:"species" binding:"required"`
	Breed       string  `json:"breed"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      string  `json:"gender"`
	MicrochipID *string `json:"microchip_id"`
}

func (h *PetHandler) Create(c *gin.Context) {
	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	pet := models.Pet{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Species:     strings.TrimSpace(req.Species),
		Breed:       req.Breed,
		Gender:      req.Gender,
		MicrochipID: req.MicrochipID,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_of_birth", "Date of birth must be YYYY-MM-DD.")
			return
		}
		pet.DateOfBirth = &dob
	}

	if err := h.pets.Create(c.Request.Context(), &pet); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, pet)
}

func (h *PetHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	pet, err := h.pets.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, pet)
}

func (h *PetHandler) List(c *gin.Context) {
	var ownerID uint
	if v := c.Query("owner_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_owner_id", "Invalid owner_id.")
			return
		}
		ownerID = uint(id)
	}

	pets, err := h.pets.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_pets", "Could not list pets.")
		return
	}

	httpresp.List(c, pets)
}

func (h *PetHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	pet, err := h.pets.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	pet.OwnerID = req.OwnerID
	pet.Name = strings.TrimSpace(req.Name)
	pet.Species = strings.TrimSpace(req.Species)
	pet.Breed = req.Breed
	pet.Gender = req.Gender
	pet.MicrochipID = req.MicrochipID

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_of_birth", "Date of birth must be YYYY-MM-DD.")
			return
		}
		pet.DateOfBirth = &dob
	} else {
		pet.DateOfBirth = nil
	}

	if err := h.pets.Update(c.Request.Context(), pet); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, pet)
}

func (h *PetHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if err := h.pets.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

// UploadPhoto stores a webp-recompressed copy of the uploaded image and saves
// its URL on the pet.
func (h *PetHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.BadRequest(c, "photos_disabled", "Photo storage is not configured.")
		return
	}

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if _, err := h.pets.Get(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Multipart field 'photo' is required.")
		return
	}
	defer file.Close()

	url, err := h.photos.UploadPetPhoto(c.Request.Context(), id, file)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Photo must be a decodable JPEG or PNG.")
		return
	}

	if err := h.pets.SetPhotoURL(c.Request.Context(), id, url); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}
