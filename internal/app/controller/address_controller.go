package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{addressService: addressService}
}

type AddressRequest struct {
	CEP        string `json:"cep" binding:"required,max=12"`
	Street     string `json:"street" binding:"required,max=150"`
	Number     string `json:"number" binding:"required,max=20"`
	Complement string `json:"complement" binding:"max=100"`
	District   string `json:"district" binding:"max=100"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=2"`
	Reference  string `json:"reference" binding:"max=150"`
	Recipient  string `json:"recipient" binding:"max=150"`
	IsDefault  bool   `json:"is_default"`
}

func (r *AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		CEP:        r.CEP,
		Street:     r.Street,
		Number:     r.Number,
		Complement: r.Complement,
		District:   r.District,
		City:       r.City,
		State:      r.State,
		Reference:  r.Reference,
		Recipient:  r.Recipient,
		IsDefault:  r.IsDefault,
	}
}

// Create adds a delivery address
// POST /api/v1/addresses
func (ctrl *AddressController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	address, err := ctrl.addressService.Create(userID, req.toInput())
	if err != nil {
		log.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// List returns the caller's addresses, default first
// GET /api/v1/addresses
func (ctrl *AddressController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	addresses, err := ctrl.addressService.ListByUser(userID)
	if err != nil {
		log.Error("Failed to list addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// Update rewrites an address
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) Update(c *gin.Context) {
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

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	address, err := ctrl.addressService.Update(id, userID, req.toInput())
	if err != nil {
		if stderrors.Is(err, service.ErrAddressNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Address not found")
			return
		}
		log.Error("Failed to update address", err, map[string]interface{}{
			"address_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// SetDefault promotes an address to the user's default
// PATCH /api/v1/addresses/:id/default
func (ctrl *AddressController) SetDefault(c *gin.Context) {
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

	address, err := ctrl.addressService.SetDefault(id, userID)
	if err != nil {
		if stderrors.Is(err, service.ErrAddressNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Address not found")
			return
		}
		log.Error("Failed to set default address", err, map[string]interface{}{
			"address_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

// Delete removes an address
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) Delete(c *gin.Context) {
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

	if err := ctrl.addressService.Delete(id, userID); err != nil {
		if stderrors.Is(err, service.ErrAddressNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Address not found")
			return
		}
		log.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
