package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFinalized OrderStatus = "finalized"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderStatusAliases maps the historical mixed pt/en status spellings to the
// canonical vocabulary. Used only at the API boundary and in admin filters;
// core logic sees canonical values exclusively.
var orderStatusAliases = map[OrderStatus][]string{
	OrderStatusPending:   {"pending", "andamento", "processed", "processado"},
	OrderStatusFinalized: {"finalized", "finalizado", "completed", "concluido"},
	OrderStatusCancelled: {"cancelled", "canceled", "cancelado", "cancel", "c"},
}

// NormalizeOrderStatus maps a free-text status to its canonical value.
func NormalizeOrderStatus(raw string) (OrderStatus, bool) {
	token := normalizeToken(raw)
	for canonical, aliases := range orderStatusAliases {
		for _, a := range aliases {
			if token == a {
				return canonical, true
			}
		}
	}
	return "", false
}

// ExpandOrderStatusFilter returns every spelling matching a status filter,
// lowercased, for use in a lower(status) IN (...) query. Rows imported from
// the legacy system may still carry alias values. Unknown input falls back
// to itself so an exotic filter simply matches nothing extra.
func ExpandOrderStatusFilter(raw string) []string {
	if raw == "" {
		return nil
	}
	canonical, ok := NormalizeOrderStatus(raw)
	if !ok {
		return []string{normalizeToken(raw)}
	}
	return orderStatusAliases[canonical]
}

// Order is the immutable record of a completed purchase. Only Status may
// change after creation, through the transition rules in the order service.
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Total         float64        `gorm:"not null;default:0" json:"total"`
	Status        OrderStatus    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod string         `gorm:"size:50" json:"payment_method"`
	PaymentData   string         `gorm:"type:text" json:"payment_data,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User  User        `gorm:"foreignKey:UserID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots name, quantity and unit price at purchase time.
// ProductID is kept for reference but the snapshot stays authoritative even
// if the product is later changed or deleted.
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ProductID   *uint     `gorm:"index" json:"product_id,omitempty"`
	ProductName string    `gorm:"size:120;not null" json:"product_name"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"not null;default:0" json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
