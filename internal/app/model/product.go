package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"size:255" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Species     string         `gorm:"size:100;index" json:"species"`
	ImageBlob   []byte         `gorm:"type:bytea" json:"-"`
	ImageMime   string         `gorm:"size:50" json:"-"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// Sellable reports whether the product can be added to a cart or ordered.
func (p *Product) Sellable() bool {
	return p != nil && p.IsActive && !p.DeletedAt.Valid
}

// PlaceholderProductName is the display name used when the product row for a
// cart or order line can no longer be resolved.
func PlaceholderProductName(productID uint) string {
	return fmt.Sprintf("Product #%d", productID)
}
