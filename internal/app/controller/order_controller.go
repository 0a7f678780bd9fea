package controller

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/internal/app/service"
	"github.com/appessoa/PetGo/internal/errors"
	"github.com/appessoa/PetGo/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService  service.OrderService
	reportService service.ReportService
}

func NewOrderController(orderService service.OrderService, reportService service.ReportService) *OrderController {
	return &OrderController{
		orderService:  orderService,
		reportService: reportService,
	}
}

// CheckoutRequest carries the payment selection. PaymentData is stored on the
// order as-is; the gateway integration interprets it later.
type CheckoutRequest struct {
	PaymentMethod string          `json:"payment_method"`
	PaymentData   json.RawMessage `json:"payment_data"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout converts the user's open cart into an order
// POST /api/v1/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.CreateFromCart(userID, req.PaymentMethod, string(req.PaymentData))
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case stderrors.Is(err, service.ErrEmptyCart):
			errors.BadRequest(c, errors.CartEmptyCart, "Cart is empty")
		case stderrors.As(err, &stockErr):
			errors.RespondWithError(c, http.StatusConflict, errors.OrderInsufficientStock,
				fmt.Sprintf("Insufficient stock for %s: requested %d, available %d",
					stockErr.ProductName, stockErr.Requested, stockErr.Available))
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders returns the caller's order history
// GET /api/v1/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.ListByUser(userID)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order, visible to its owner or an admin
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrOrderNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Order not found")
		case stderrors.Is(err, service.ErrOrderAccessDenied):
			errors.Forbidden(c, "")
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"order_id": orderID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus applies a status transition. Status accepts legacy pt/en
// alias spellings; they are normalized before reaching the service.
// PATCH /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	status, ok := model.NormalizeOrderStatus(req.Status)
	if !ok {
		log.Warn("Unknown order status", map[string]interface{}{
			"order_id": orderID,
			"status":   req.Status,
		})
		errors.BadRequest(c, errors.ValidationInvalidStatus, "Unknown order status")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(orderID, status, userID, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrOrderNotFound):
			errors.NotFound(c, errors.ResourceNotFound, "Order not found")
		case stderrors.Is(err, service.ErrOrderAccessDenied):
			errors.Forbidden(c, "")
		case stderrors.Is(err, service.ErrInvalidTransition):
			errors.Conflict(c, errors.OrderInvalidTransition, "Status transition not allowed")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": orderID,
			})
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// adminOrderFilter parses the admin listing query parameters. Dates are
// YYYY-MM-DD; date_to is inclusive.
func adminOrderFilter(c *gin.Context) (repository.AdminOrderFilter, error) {
	filter := repository.AdminOrderFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	}

	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid date_from: %s", raw)
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid date_to: %s", raw)
		}
		filter.DateTo = &t
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return filter, nil
}

// ListAdmin returns the cross-user order listing
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListAdmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, err := adminOrderFilter(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	orders, total, err := ctrl.orderService.ListAdmin(filter)
	if err != nil {
		log.Error("Failed to search orders", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   filter.Page,
	})
}

// ExportAdmin downloads the filtered admin listing as a spreadsheet
// GET /api/v1/admin/orders/export
func (ctrl *OrderController) ExportAdmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, err := adminOrderFilter(c)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, err.Error())
		return
	}

	payload, err := ctrl.reportService.OrdersXLSX(filter)
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		errors.InternalError(c, "")
		return
	}

	filename := "orders-" + time.Now().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
