package controller

import (
	"encoding/base64"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

type PetController struct {
	petService service.PetService
}

func NewPetController(petService service.PetService) *PetController {
	return &PetController{petService: petService}
}

// PetRequest carries pet registration data. Photo is base64-encoded image
// bytes; DOB is YYYY-MM-DD.
type PetRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Breed       string  `json:"breed" binding:"required,max=100"`
	Species     string  `json:"species" binding:"max=100"`
	Weight      float64 `json:"weight" binding:"gte=0"`
	Sex         string  `json:"sex" binding:"max=10"`
	DOB         string  `json:"dob"`
	Description string  `json:"description"`
	ForAdoption bool    `json:"for_adoption"`
	Photo       string  `json:"photo"`
	PhotoMime   string  `json:"photo_mime"`
}

func (r *PetRequest) toInput() (service.PetInput, error) {
	input := service.PetInput{
		Name:        r.Name,
		Breed:       r.Breed,
		Species:     r.Species,
		Weight:      r.Weight,
		Sex:         r.Sex,
		Description: r.Description,
		ForAdoption: r.ForAdoption,
		PhotoMime:   r.PhotoMime,
	}
	if r.DOB != "" {
		dob, err := time.Parse("2006-01-02", r.DOB)
		if err != nil {
			return input, stderrors.New("dob must be YYYY-MM-DD")
		}
		input.DOB = &dob
	}
	if r.Photo != "" {
		raw, err := base64.StdEncoding.DecodeString(r.Photo)
		if err != nil {
			return input, stderrors.New("photo must be base64 encoded")
		}
		input.Photo = raw
	}
	return input, nil
}

// Create registers a pet for the caller
// POST /api/v1/pets
func (ctrl *PetController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	pet, err := ctrl.petService.Create(userID, input)
	if err != nil {
		log.Error("Failed to register pet", err, map[string]interface{}{
			"owner_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pet": pet})
}

// List returns the caller's pets
// GET /api/v1/pets
func (ctrl *PetController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	pets, err := ctrl.petService.ListByOwner(userID)
	if err != nil {
		log.Error("Failed to list pets", err, map[string]interface{}{
			"owner_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pets":  pets,
		"count": len(pets),
	})
}

// Get returns one pet with its photo rendered as a data URL
// GET /api/v1/pets/:id
func (ctrl *PetController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pet, err := ctrl.petService.GetByID(id)
	if err != nil {
		if stderrors.Is(err, service.ErrPetNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Pet not found")
			return
		}
		log.Error("Failed to fetch pet", err, map[string]interface{}{
			"pet_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pet":   pet,
		"photo": pet.PhotoDataURL(),
	})
}

// Update rewrites a pet's profile
// PUT /api/v1/pets/:id
func (ctrl *PetController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	pet, err := ctrl.petService.Update(id, userID, input)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrPetNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Pet not found")
		case stderrors.Is(err, service.ErrPetNotOwned):
			errors.Forbidden(c, "Pet belongs to another user")
		default:
			log.Error("Failed to update pet", err, map[string]interface{}{
				"pet_id": id,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"pet": pet})
}

// VaccineRequest records a vaccine application. Dates are YYYY-MM-DD.
type VaccineRequest struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Next  string `json:"next"`
	Notes string `json:"notes"`
}

type ConsultationRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (ctrl *PetController) respondHistoryError(c *gin.Context, err error, log *logger.Logger) {
	var missing *service.MissingFieldsError
	switch {
	case stderrors.As(err, &missing):
		fields := make(map[string]string, len(missing.Fields))
		for _, f := range missing.Fields {
			fields[f] = "required"
		}
		errors.RespondWithValidationError(c, fields)
	case stderrors.Is(err, service.ErrPetNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Pet not found")
	case stderrors.Is(err, service.ErrPetNotOwned):
		errors.Forbidden(c, "Pet belongs to another user")
	case stderrors.Is(err, service.ErrVaccineNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Vaccine record not found")
	case stderrors.Is(err, service.ErrConsultationNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Consultation record not found")
	default:
		log.Error("Pet history operation failed", err)
		errors.InternalError(c, "")
	}
}

// AddVaccine appends an entry to a pet's vaccination history
// POST /api/v1/pets/:id/vaccines
func (ctrl *PetController) AddVaccine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	petID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VaccineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.VaccineInput{Name: req.Name, Notes: req.Notes}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "date must be YYYY-MM-DD")
			return
		}
		input.Date = date
	}
	if req.Next != "" {
		next, err := time.Parse("2006-01-02", req.Next)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "next must be YYYY-MM-DD")
			return
		}
		input.NextDue = &next
	}

	vaccine, err := ctrl.petService.AddVaccine(petID, userID, middleware.IsAdmin(c), input)
	if err != nil {
		ctrl.respondHistoryError(c, err, log)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vaccine": vaccine})
}

// RemoveVaccine deletes an entry from a pet's vaccination history
// DELETE /api/v1/pets/:id/vaccines/:vaccineId
func (ctrl *PetController) RemoveVaccine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	petID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vaccineID, ok := parseIDParam(c, "vaccineId")
	if !ok {
		return
	}

	if err := ctrl.petService.RemoveVaccine(petID, vaccineID, userID, middleware.IsAdmin(c)); err != nil {
		ctrl.respondHistoryError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vaccine removed"})
}

// AddConsultation appends an entry to a pet's consultation history
// POST /api/v1/pets/:id/consultations
func (ctrl *PetController) AddConsultation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	petID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.ConsultationInput{Reason: req.Reason, Notes: req.Notes}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "date must be YYYY-MM-DD")
			return
		}
		input.Date = date
	}

	consultation, err := ctrl.petService.AddConsultation(petID, userID, middleware.IsAdmin(c), input)
	if err != nil {
		ctrl.respondHistoryError(c, err, log)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"consultation": consultation})
}

// RemoveConsultation deletes an entry from a pet's consultation history
// DELETE /api/v1/pets/:id/consultations/:consultationId
func (ctrl *PetController) RemoveConsultation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	petID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	consultationID, ok := parseIDParam(c, "consultationId")
	if !ok {
		return
	}

	if err := ctrl.petService.RemoveConsultation(petID, consultationID, userID, middleware.IsAdmin(c)); err != nil {
		ctrl.respondHistoryError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consultation removed"})
}

// Delete removes a pet
// DELETE /api/v1/pets/:id
func (ctrl *PetController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.petService.Delete(id, userID, middleware.IsAdmin(c)); err != nil {
		switch {
		case stderrors.Is(err, service.ErrPetNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Pet not found")
		case stderrors.Is(err, service.ErrPetNotOwned):
			errors.Forbidden(c, "Pet belongs to another user")
		default:
			log.Error("Failed to delete pet", err, map[string]interface{}{
				"pet_id": id,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted"})
}
