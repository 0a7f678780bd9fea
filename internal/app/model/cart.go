package model

import (
	"time"

	"gorm.io/gorm"
)

type CartStatus string

const (
	CartStatusOpen      CartStatus = "open"
	CartStatusClosed    CartStatus = "closed"
	CartStatusConverted CartStatus = "converted" // legacy imports only; checkout closes carts
	CartStatusAbandoned CartStatus = "abandoned"
)

// CartItemMode selects how ApplyItem changes an item's quantity.
type CartItemMode string

const (
	ModeInclude CartItemMode = "include" // add to existing quantity
	ModeSet     CartItemMode = "set"     // replace quantity
	ModeRemove  CartItemMode = "remove"  // subtract, dropping the item at <= 0
)

// NormalizeCartItemMode maps client mode spellings to the canonical mode.
func NormalizeCartItemMode(raw string) (CartItemMode, bool) {
	switch normalizeToken(raw) {
	case "include", "incluir", "add":
		return ModeInclude, true
	case "set", "setar", "":
		return ModeSet, true
	case "remove", "remover", "subtract":
		return ModeRemove, true
	}
	return "", false
}

// Cart is the per-user mutable staging area for purchase items.
// Invariant: at most one open, active cart per user.
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Status    CartStatus     `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User       `gorm:"foreignKey:UserID" json:"-"`
	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem references its product by id only (soft foreign key): the product
// may be deactivated or deleted after the item is added. UnitPrice is a
// snapshot re-captured from the live product on every mutation.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CartID    uint           `gorm:"not null;index" json:"cart_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
