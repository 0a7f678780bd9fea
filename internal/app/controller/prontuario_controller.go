package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProntuarioController struct {
	prontuarioService service.ProntuarioService
}

func NewProntuarioController(prontuarioService service.ProntuarioService) *ProntuarioController {
	return &ProntuarioController{prontuarioService: prontuarioService}
}

// ProntuarioRequest submits a medical record. Required-field validation is
// done in the service so every missing field is reported at once.
type ProntuarioRequest struct {
	PetID        uint   `json:"pet_id"`
	VetID        *uint  `json:"vet_id"`
	SchedulingID *uint  `json:"scheduling_id"`
	Anamnese     string `json:"anamnese"`
	Diagnostico  string `json:"diagnostico"`
	Tratamento   string `json:"tratamento"`
}

// Create stores a medical record, optionally completing an appointment
// POST /api/v1/prontuarios
func (ctrl *ProntuarioController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req ProntuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	prontuario, err := ctrl.prontuarioService.Create(service.ProntuarioInput{
		PetID:        req.PetID,
		VetID:        req.VetID,
		SchedulingID: req.SchedulingID,
		Anamnese:     req.Anamnese,
		Diagnostico:  req.Diagnostico,
		Tratamento:   req.Tratamento,
	}, userID)
	if err != nil {
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
		case stderrors.Is(err, service.ErrVetNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Veterinarian not found")
		case stderrors.Is(err, service.ErrSchedulingNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Appointment not found")
		case stderrors.Is(err, service.ErrSchedulingPetMismatch):
			errors.Conflict(c, errors.SchedulingPetMismatch, "Appointment is for a different pet")
		default:
			log.Error("Failed to create medical record", err, map[string]interface{}{
				"pet_id": req.PetID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prontuario": prontuario})
}

// Get returns one medical record
// GET /api/v1/prontuarios/:id
func (ctrl *ProntuarioController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prontuario, err := ctrl.prontuarioService.GetByID(id)
	if err != nil {
		if stderrors.Is(err, service.ErrProntuarioNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Medical record not found")
			return
		}
		log.Error("Failed to fetch medical record", err, map[string]interface{}{
			"prontuario_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"prontuario": prontuario})
}

// ListByPet returns a pet's clinical history
// GET /api/v1/pets/:id/prontuarios
func (ctrl *ProntuarioController) ListByPet(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	petID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prontuarios, err := ctrl.prontuarioService.ListByPet(petID)
	if err != nil {
		if stderrors.Is(err, service.ErrPetNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Pet not found")
			return
		}
		log.Error("Failed to list medical records", err, map[string]interface{}{
			"pet_id": petID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prontuarios": prontuarios,
		"count":       len(prontuarios),
	})
}

// Update rewrites the clinical text of a record
// PUT /api/v1/prontuarios/:id
func (ctrl *ProntuarioController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProntuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	prontuario, err := ctrl.prontuarioService.Update(id, service.ProntuarioInput{
		Anamnese:    req.Anamnese,
		Diagnostico: req.Diagnostico,
		Tratamento:  req.Tratamento,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrProntuarioNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Medical record not found")
			return
		}
		log.Error("Failed to update medical record", err, map[string]interface{}{
			"prontuario_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"prontuario": prontuario})
}
