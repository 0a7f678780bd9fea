package service

import (
	"errors"
	"fmt"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/appessoa/PetGo/pkg/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderAccessDenied = errors.New("order belongs to another user")
	ErrInvalidTransition = errors.New("order status transition not allowed")
)

// InsufficientStockError reports which product blocked a checkout.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

type OrderService interface {
	CreateFromCart(userID uint, paymentMethod, paymentData string) (*model.Order, error)
	GetOrder(orderID, actorID uint, actorIsAdmin bool) (*model.Order, error)
	ListByUser(userID uint) ([]model.Order, error)
	UpdateStatus(orderID uint, newStatus model.OrderStatus, actorID uint, actorIsAdmin bool) (*model.Order, error)
	ListAdmin(filter repository.AdminOrderFilter) ([]model.Order, int64, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		db:        db,
	}
}

// CreateFromCart converts the user's open cart into an order. Stock checks
// and debits happen under row locks in one transaction: either every valid
// item is fulfilled or nothing changes. Items whose product vanished or went
// inactive after carting do not block checkout: they are snapshotted under a
// placeholder name at the cart's unit price and no stock moves for them. On
// success the cart is closed and a fresh open cart is created for the user.
func (s *orderService) CreateFromCart(userID uint, paymentMethod, paymentData string) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":        userID,
		"payment_method": paymentMethod,
	})

	cart, err := s.cartRepo.FindOpenByUserWithItems(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Checkout without an open cart", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrEmptyCart
		}
		logger.Error("Failed to fetch cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	items := make([]model.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, ErrEmptyCart
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		orderItems []model.OrderItem
		subtotals  []float64
	)

	for _, cartItem := range items {
		var product model.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			logger.Error("Failed to fetch product during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}
		sellable := err == nil && product.Sellable()

		name := model.PlaceholderProductName(cartItem.ProductID)
		if sellable {
			if product.Stock < cartItem.Quantity {
				tx.Rollback()
				logger.Warn("Checkout failed: insufficient stock", map[string]interface{}{
					"user_id":    userID,
					"product_id": product.ID,
					"requested":  cartItem.Quantity,
					"available":  product.Stock,
				})
				return nil, &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   cartItem.Quantity,
					Available:   product.Stock,
				}
			}
			if err := tx.Model(&product).
				Update("stock", gorm.Expr("stock - ?", cartItem.Quantity)).Error; err != nil {
				tx.Rollback()
				logger.Error("Failed to debit stock during checkout", err, map[string]interface{}{
					"product_id": product.ID,
				})
				return nil, err
			}
			if product.Name != "" {
				name = product.Name
			}
		} else {
			logger.Warn("Checkout line snapshotted under placeholder name", map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
		}

		productID := cartItem.ProductID
		orderItems = append(orderItems, model.OrderItem{
			ProductID:   &productID,
			ProductName: name,
			Quantity:    cartItem.Quantity,
			UnitPrice:   cartItem.UnitPrice,
		})
		subtotals = append(subtotals, money.LineSubtotal(cartItem.Quantity, cartItem.UnitPrice))
	}

	order := &model.Order{
		UserID:        userID,
		Total:         money.Sum(subtotals...),
		Status:        model.OrderStatusPending,
		PaymentMethod: paymentMethod,
		PaymentData:   paymentData,
		Items:         orderItems,
	}
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// Close the converted cart and open a fresh one in the same transaction
	// so the user never observes a moment without an open cart.
	if err := tx.Model(&model.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"status":    model.CartStatusClosed,
			"is_active": false,
		}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to close cart after checkout", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return nil, err
	}

	// The partial unique index on open carts makes this insert a no-op when a
	// concurrent request already reopened one; re-read it in that case.
	newCart := &model.Cart{
		UserID:   userID,
		Status:   model.CartStatusOpen,
		IsActive: true,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(newCart).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to open new cart after checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if newCart.ID == 0 {
		if err := tx.Where("user_id = ? AND status = ? AND is_active = ?",
			userID, model.CartStatusOpen, true).First(newCart).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	})
	return order, nil
}

// GetOrder returns an order visible to the actor: its owner or an admin.
func (s *orderService) GetOrder(orderID, actorID uint, actorIsAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if order.UserID != actorID && !actorIsAdmin {
		logger.Warn("Order access denied", map[string]interface{}{
			"order_id": orderID,
			"owner_id": order.UserID,
			"actor_id": actorID,
		})
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *orderService) ListByUser(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

// UpdateStatus applies a status transition. Admins may move an order to any
// canonical status. A regular user may only cancel their own pending order.
// Cancelling restores stock for every item whose product still exists, in the
// same transaction as the status change.
func (s *orderService) UpdateStatus(orderID uint, newStatus model.OrderStatus, actorID uint, actorIsAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !actorIsAdmin {
		if order.UserID != actorID {
			logger.Warn("Status change denied: not the order owner", map[string]interface{}{
				"order_id": orderID,
				"actor_id": actorID,
			})
			return nil, ErrOrderAccessDenied
		}
		if newStatus != model.OrderStatusCancelled || order.Status != model.OrderStatusPending {
			logger.Warn("Status change denied: owners may only cancel pending orders", map[string]interface{}{
				"order_id":   orderID,
				"from":       order.Status,
				"to":         newStatus,
			})
			return nil, ErrInvalidTransition
		}
	}

	if order.Status == newStatus {
		return order, nil
	}

	restock := newStatus == model.OrderStatusCancelled && order.Status != model.OrderStatusCancelled

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if restock {
			for _, item := range order.Items {
				if item.ProductID == nil {
					continue
				}
				var product model.Product
				err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&product, *item.ProductID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Product deleted since purchase: nothing to restore.
					continue
				}
				if err != nil {
					return err
				}
				if err := tx.Model(&product).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&model.Order{}).Where("id = ?", order.ID).
			Update("status", newStatus).Error
	})
	if err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
			"to":       newStatus,
		})
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       newStatus,
		"restock":  restock,
	})

	order.Status = newStatus
	return order, nil
}

func (s *orderService) ListAdmin(filter repository.AdminOrderFilter) ([]model.Order, int64, error) {
	return s.orderRepo.SearchAdmin(filter)
}
