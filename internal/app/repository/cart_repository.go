package repository

import (
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cart *model.Cart) error
	FindOpenByUser(userID uint) (*model.Cart, error)
	FindOpenByUserWithItems(userID uint) (*model.Cart, error)
	FindItem(cartID, productID uint) (*model.CartItem, error)
	FindItemByID(itemID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeactivateItem(item *model.CartItem) error
	AbandonOpenCartsBefore(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id": cart.UserID,
		})
		return err
	}
	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": cart.UserID,
	})
	return nil
}

func (r *cartRepository) FindOpenByUser(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ? AND status = ? AND is_active = ?",
		userID, model.CartStatusOpen, true).
		Order("id DESC").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindOpenByUserWithItems preloads only active items. Soft-deleted items are
// excluded by gorm automatically.
func (r *cartRepository) FindOpenByUserWithItems(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Preload("Items", "is_active = ?", true).
		Where("user_id = ? AND status = ? AND is_active = ?",
			userID, model.CartStatusOpen, true).
		Order("id DESC").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindItem(cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ? AND is_active = ?",
		cartID, productID, true).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItemByID(itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

// DeactivateItem soft-removes an item from its cart. Removing an item twice
// is a no-op for the caller.
func (r *cartRepository) DeactivateItem(item *model.CartItem) error {
	item.IsActive = false
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to deactivate cart item", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return r.db.Delete(item).Error
}

// AbandonOpenCartsBefore marks open carts untouched since the cutoff as
// abandoned. Used by the cart janitor.
func (r *cartRepository) AbandonOpenCartsBefore(cutoff time.Time) (int64, error) {
	result := r.db.Model(&model.Cart{}).
		Where("status = ? AND is_active = ? AND updated_at < ?",
			model.CartStatusOpen, true, cutoff).
		Updates(map[string]interface{}{
			"status":    model.CartStatusAbandoned,
			"is_active": false,
		})
	if result.Error != nil {
		logger.Error("Failed to abandon stale carts", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
