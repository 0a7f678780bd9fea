package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AdoptionController struct {
	adoptionService service.AdoptionService
}

func NewAdoptionController(adoptionService service.AdoptionService) *AdoptionController {
	return &AdoptionController{adoptionService: adoptionService}
}

type AdoptionApplyRequest struct {
	PetID   uint   `json:"pet_id" binding:"required"`
	Message string `json:"message" binding:"max=1000"`
}

// ListAvailablePets returns pets up for adoption
// GET /api/v1/adoption/pets
func (ctrl *AdoptionController) ListAvailablePets(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	pets, err := ctrl.adoptionService.ListAvailablePets()
	if err != nil {
		log.Error("Failed to list pets for adoption", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pets":  pets,
		"count": len(pets),
	})
}

// Apply files an adoption application
// POST /api/v1/adoption/applications
func (ctrl *AdoptionController) Apply(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req AdoptionApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	application, err := ctrl.adoptionService.Apply(req.PetID, userID, req.Message)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrPetNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Pet not found")
		case stderrors.Is(err, service.ErrPetNotForAdoption):
			errors.Conflict(c, errors.AdoptionNotAvailable, "Pet is not available for adoption")
		case stderrors.Is(err, service.ErrDuplicateApplication):
			errors.Conflict(c, errors.AdoptionNotAvailable, "You already applied for this pet")
		default:
			log.Error("Failed to file adoption application", err, map[string]interface{}{
				"pet_id": req.PetID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application": application})
}

// ListMine returns the caller's applications
// GET /api/v1/adoption/applications
func (ctrl *AdoptionController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	applications, err := ctrl.adoptionService.ListByApplicant(userID)
	if err != nil {
		log.Error("Failed to list adoption applications", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"count":        len(applications),
	})
}

// ListPending returns applications awaiting a decision
// GET /api/v1/admin/adoption/applications
func (ctrl *AdoptionController) ListPending(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	applications, err := ctrl.adoptionService.ListPending()
	if err != nil {
		log.Error("Failed to list pending adoption applications", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"count":        len(applications),
	})
}

func (ctrl *AdoptionController) decide(c *gin.Context, approve bool) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var (
		application interface{}
		err         error
	)
	if approve {
		application, err = ctrl.adoptionService.Approve(id)
	} else {
		application, err = ctrl.adoptionService.Reject(id)
	}
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrApplicationNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Application not found")
		case stderrors.Is(err, service.ErrApplicationNotOpen):
			errors.Conflict(c, errors.AdoptionNotAvailable, "Application already decided")
		case stderrors.Is(err, service.ErrPetNotForAdoption):
			errors.Conflict(c, errors.AdoptionNotAvailable, "Pet is no longer available")
		default:
			log.Error("Failed to decide adoption application", err, map[string]interface{}{
				"application_id": id,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// Approve grants an adoption application
// POST /api/v1/admin/adoption/applications/:id/approve
func (ctrl *AdoptionController) Approve(c *gin.Context) {
	ctrl.decide(c, true)
}

// Reject declines an adoption application
// POST /api/v1/admin/adoption/applications/:id/reject
func (ctrl *AdoptionController) Reject(c *gin.Context) {
	ctrl.decide(c, false)
}
