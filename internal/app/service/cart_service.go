package service

import (
	"errors"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/appessoa/PetGo/pkg/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidCartMode    = errors.New("invalid cart item mode")
	ErrProductUnavailable = errors.New("product is not available for purchase")
	ErrCartItemNotFound   = errors.New("cart item not found")
)

// CartItemView is a cart line with its recomputed subtotal.
type CartItemView struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// CartView is the cart as returned to clients. Totals are always recomputed
// from the items, never stored.
type CartView struct {
	ID       uint             `json:"id"`
	Status   model.CartStatus `json:"status"`
	Items    []CartItemView   `json:"items"`
	Subtotal float64          `json:"subtotal"`
}

type CartService interface {
	GetCart(userID uint) (*CartView, error)
	ApplyItem(userID, productID uint, quantity int, mode model.CartItemMode) (*CartView, error)
	RemoveItem(userID, itemID uint) (*CartView, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		db:          db,
	}
}

// getOrCreateOpenCart returns the user's open cart, creating one when none
// exists. A locking SELECT that matches no rows locks nothing, so the
// single-open-cart invariant rests on the partial unique index over open
// carts: a losing concurrent insert becomes a no-op and the winner's row is
// re-read.
func (s *cartService) getOrCreateOpenCart(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status = ? AND is_active = ?",
				userID, model.CartStatusOpen, true).
			Order("id DESC").
			First(&cart).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		cart = model.Cart{
			UserID:   userID,
			Status:   model.CartStatusOpen,
			IsActive: true,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cart).Error; err != nil {
			return err
		}
		if cart.ID == 0 {
			// Lost the race: another request inserted the open cart first.
			return tx.Where("user_id = ? AND status = ? AND is_active = ?",
				userID, model.CartStatusOpen, true).
				Order("id DESC").
				First(&cart).Error
		}
		logger.Info("Opened new cart for user", map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil
	})
	if err != nil {
		logger.Error("Failed to get or create open cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return &cart, nil
}

func (s *cartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.getOrCreateOpenCart(userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(cart.ID)
}

// ApplyItem adds, sets or subtracts quantity for a product in the user's open
// cart. The unit price snapshot is refreshed from the live product on every
// mutation. A resulting quantity of zero or less removes the item.
func (s *cartService) ApplyItem(userID, productID uint, quantity int, mode model.CartItemMode) (*CartView, error) {
	if quantity <= 0 && mode != model.ModeRemove {
		logger.Warn("Rejected cart mutation with non-positive quantity", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"quantity":   quantity,
		})
		return nil, ErrInvalidQuantity
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductUnavailable
		}
		logger.Error("Failed to fetch product for cart mutation", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	if !product.Sellable() {
		logger.Warn("Rejected cart mutation for inactive product", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, ErrProductUnavailable
	}

	cart, err := s.getOrCreateOpenCart(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItem(cart.ID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": productID,
		})
		return nil, err
	}

	current := 0
	if item != nil {
		current = item.Quantity
	}

	var next int
	switch mode {
	case model.ModeInclude:
		next = current + quantity
	case model.ModeSet:
		next = quantity
	case model.ModeRemove:
		next = current - quantity
	default:
		return nil, ErrInvalidCartMode
	}

	if next <= 0 {
		if item != nil {
			if err := s.cartRepo.DeactivateItem(item); err != nil {
				return nil, err
			}
			logger.Info("Cart item removed", map[string]interface{}{
				"cart_id":    cart.ID,
				"product_id": productID,
			})
		}
		return s.buildView(cart.ID)
	}

	if item == nil {
		item = &model.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  next,
			UnitPrice: product.Price,
			IsActive:  true,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	} else {
		item.Quantity = next
		item.UnitPrice = product.Price
		if err := s.cartRepo.UpdateItem(item); err != nil {
			return nil, err
		}
	}

	logger.Info("Cart item applied", map[string]interface{}{
		"user_id":    userID,
		"cart_id":    cart.ID,
		"product_id": productID,
		"quantity":   next,
		"mode":       mode,
	})
	return s.buildView(cart.ID)
}

// RemoveItem drops an item from the user's open cart. Removing an item that
// is already gone succeeds, so retries are harmless.
func (s *cartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	cart, err := s.getOrCreateOpenCart(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.buildView(cart.ID)
		}
		return nil, err
	}
	if item.CartID != cart.ID {
		logger.Warn("Attempt to remove item from another user's cart", map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return nil, ErrCartItemNotFound
	}

	if item.IsActive {
		if err := s.cartRepo.DeactivateItem(item); err != nil {
			return nil, err
		}
		logger.Info("Cart item removed", map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
			"item_id": itemID,
		})
	}
	return s.buildView(cart.ID)
}

// buildView loads the cart with its active items and recomputes every
// subtotal. Items whose product has since vanished keep their snapshot price
// but fall back to a placeholder name.
func (s *cartService) buildView(cartID uint) (*CartView, error) {
	var cart model.Cart
	err := s.db.Preload("Items", "is_active = ?", true).First(&cart, cartID).Error
	if err != nil {
		logger.Error("Failed to load cart for view", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	view := &CartView{
		ID:     cart.ID,
		Status: cart.Status,
		Items:  make([]CartItemView, 0, len(cart.Items)),
	}

	subtotals := make([]float64, 0, len(cart.Items))
	for _, item := range cart.Items {
		name := productDisplayName(s.db, item.ProductID)
		subtotal := money.LineSubtotal(item.Quantity, item.UnitPrice)
		subtotals = append(subtotals, subtotal)
		view.Items = append(view.Items, CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal,
		})
	}
	view.Subtotal = money.Sum(subtotals...)
	return view, nil
}

// productDisplayName resolves a product name, including soft-deleted rows so
// old cart lines still show something meaningful.
func productDisplayName(db *gorm.DB, productID uint) string {
	var product model.Product
	err := db.Unscoped().Select("name").First(&product, productID).Error
	if err != nil || product.Name == "" {
		return model.PlaceholderProductName(productID)
	}
	return product.Name
}
