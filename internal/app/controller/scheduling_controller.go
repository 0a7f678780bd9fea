package controller

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

type SchedulingController struct {
	schedulingService service.SchedulingService
}

func NewSchedulingController(schedulingService service.SchedulingService) *SchedulingController {
	return &SchedulingController{schedulingService: schedulingService}
}

// SchedulingRequest books or updates an appointment. Service and status
// accept the legacy pt spellings (banho, veterinario, passeio, marcado, ...).
type SchedulingRequest struct {
	PetID   uint   `json:"pet_id" binding:"required"`
	Service string `json:"service" binding:"required"`
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	Time    string `json:"time" binding:"required"` // HH:MM
	Notes   string `json:"notes"`
	VetID   *uint  `json:"vet_id"`
}

type SchedulingUpdateRequest struct {
	PetID   uint   `json:"pet_id"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
	VetID   *uint  `json:"vet_id"`
}

type SchedulingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (ctrl *SchedulingController) respondServiceError(c *gin.Context, err error, log *logger.Logger) {
	switch {
	case stderrors.Is(err, service.ErrSchedulingNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Appointment not found")
	case stderrors.Is(err, service.ErrSchedulingAccessDenied):
		errors.Forbidden(c, "")
	case stderrors.Is(err, service.ErrPetNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Pet not found")
	case stderrors.Is(err, service.ErrPetNotOwned):
		errors.Forbidden(c, "Pet belongs to another user")
	case stderrors.Is(err, service.ErrVetNotFound):
		errors.NotFound(c, errors.ResourceNotFound, "Veterinarian not found")
	case stderrors.Is(err, service.ErrPastDate):
		errors.BadRequest(c, errors.ValidationPastDate, "Appointment date is in the past")
	case stderrors.Is(err, service.ErrInvalidTime):
		errors.BadRequest(c, errors.ValidationInvalidInput, "Time must be in HH:MM format")
	case stderrors.Is(err, service.ErrInvalidStatus):
		errors.Conflict(c, errors.ValidationInvalidStatus, "Appointment can no longer be changed")
	default:
		log.Error("Scheduling operation failed", err)
		errors.InternalError(c, "")
	}
}

// Create books an appointment
// POST /api/v1/agendamentos
func (ctrl *SchedulingController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req SchedulingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	kind, ok := model.NormalizeServiceKind(req.Service)
	if !ok {
		log.Warn("Unknown service kind", map[string]interface{}{
			"user_id": userID,
			"service": req.Service,
		})
		errors.BadRequest(c, errors.SchedulingInvalidService, "Unknown service kind")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
		return
	}

	scheduling, err := ctrl.schedulingService.Create(userID, service.SchedulingInput{
		PetID:   req.PetID,
		Service: kind,
		Date:    date,
		Time:    req.Time,
		Notes:   req.Notes,
		VetID:   req.VetID,
	})
	if err != nil {
		ctrl.respondServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"scheduling": scheduling})
}

// List returns the caller's own appointments
// GET /api/v1/agendamentos
func (ctrl *SchedulingController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	status := ""
	if raw := c.Query("status"); raw != "" {
		normalized, ok := model.NormalizeSchedulingStatus(raw)
		if !ok {
			errors.BadRequest(c, errors.ValidationInvalidStatus, "Unknown appointment status")
			return
		}
		status = string(normalized)
	}

	schedulings, err := ctrl.schedulingService.ListByUser(userID, status)
	if err != nil {
		log.Error("Failed to list appointments", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedulings": schedulings,
		"count":       len(schedulings),
	})
}

// ListAssigned returns appointments assigned to the calling veterinarian
// GET /api/v1/vet/agendamentos
func (ctrl *SchedulingController) ListAssigned(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	status := ""
	if raw := c.Query("status"); raw != "" {
		normalized, ok := model.NormalizeSchedulingStatus(raw)
		if !ok {
			errors.BadRequest(c, errors.ValidationInvalidStatus, "Unknown appointment status")
			return
		}
		status = string(normalized)
	}

	schedulings, err := ctrl.schedulingService.ListForVet(userID, status)
	if err != nil {
		ctrl.respondServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedulings": schedulings,
		"count":       len(schedulings),
	})
}

// Get returns one appointment
// GET /api/v1/agendamentos/:id
func (ctrl *SchedulingController) Get(c *gin.Context) {
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

	scheduling, err := ctrl.schedulingService.GetByID(id, userID, middleware.IsAdmin(c))
	if err != nil {
		ctrl.respondServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scheduling": scheduling})
}

// Update rewrites the mutable fields of an appointment
// PUT /api/v1/agendamentos/:id
func (ctrl *SchedulingController) Update(c *gin.Context) {
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

	var req SchedulingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	input := service.SchedulingInput{
		PetID: req.PetID,
		Time:  req.Time,
		Notes: req.Notes,
		VetID: req.VetID,
	}
	if req.Service != "" {
		kind, ok := model.NormalizeServiceKind(req.Service)
		if !ok {
			errors.BadRequest(c, errors.SchedulingInvalidService, "Unknown service kind")
			return
		}
		input.Service = kind
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Date must be YYYY-MM-DD")
			return
		}
		input.Date = date
	}

	scheduling, err := ctrl.schedulingService.Update(id, input, userID, middleware.IsAdmin(c))
	if err != nil {
		ctrl.respondServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scheduling": scheduling})
}

// UpdateStatus moves an appointment through its lifecycle
// PATCH /api/v1/agendamentos/:id/status
func (ctrl *SchedulingController) UpdateStatus(c *gin.Context) {
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

	var req SchedulingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	status, ok := model.NormalizeSchedulingStatus(req.Status)
	if !ok {
		errors.BadRequest(c, errors.ValidationInvalidStatus, "Unknown appointment status")
		return
	}

	scheduling, err := ctrl.schedulingService.UpdateStatus(id, status, userID, middleware.IsAdmin(c))
	if err != nil {
		ctrl.respondServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scheduling": scheduling})
}

// Delete cancels and removes an appointment
// DELETE /api/v1/agendamentos/:id
func (ctrl *SchedulingController) Delete(c *gin.Context) {
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

	if err := ctrl.schedulingService.Delete(id, userID, middleware.IsAdmin(c)); err != nil {
		ctrl.respondServiceError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
