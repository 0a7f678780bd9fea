package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// ApplyItemRequest mutates one cart line. Mode accepts the legacy pt
// spellings (incluir, setar, remover); an empty mode means "set".
type ApplyItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Mode      string `json:"mode"`
}

// GetCart returns the user's open cart, creating one if needed
// GET /api/v1/carrinho
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	cart, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// ApplyItem adds, sets or subtracts quantity for a product
// POST /api/v1/carrinho/items
func (ctrl *CartController) ApplyItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req ApplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart mutation request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	mode, ok := model.NormalizeCartItemMode(req.Mode)
	if !ok {
		log.Warn("Unknown cart item mode", map[string]interface{}{
			"user_id": userID,
			"mode":    req.Mode,
		})
		errors.BadRequest(c, errors.CartInvalidMode, "Unknown cart item mode")
		return
	}

	cart, err := ctrl.cartService.ApplyItem(userID, req.ProductID, req.Quantity, mode)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrInvalidQuantity):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Quantity must be positive")
		case stderrors.Is(err, service.ErrProductUnavailable):
			errors.Conflict(c, errors.CartProductUnavailable, "Product is not available for purchase")
		default:
			log.Error("Failed to apply cart item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// RemoveItem drops an item from the cart; repeating the call is harmless
// DELETE /api/v1/carrinho/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := ctrl.cartService.RemoveItem(userID, itemID)
	if err != nil {
		if stderrors.Is(err, service.ErrCartItemNotFound) {
			errors.NotFound(c, errors.ResourceNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}
