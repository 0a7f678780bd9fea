package controller

import (
	"net/http"

	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/gin-gonic/gin"
)

type VeterinarianController struct {
	vetService service.VeterinarianService
}

func NewVeterinarianController(vetService service.VeterinarianService) *VeterinarianController {
	return &VeterinarianController{vetService: vetService}
}

// List returns the active veterinarians available for booking
// GET /api/v1/veterinarios
func (ctrl *VeterinarianController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vets, err := ctrl.vetService.ListAvailable()
	if err != nil {
		log.Error("Failed to list veterinarians", err)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"veterinarians": vets,
		"count":         len(vets),
	})
}
