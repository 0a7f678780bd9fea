package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	CEP        string         `gorm:"size:9" json:"cep"`
	Street     string         `gorm:"size:200" json:"street"`
	Number     string         `gorm:"size:16" json:"number"`
	Complement string         `gorm:"size:120" json:"complement"`
	District   string         `gorm:"size:120" json:"district"`
	City       string         `gorm:"size:120" json:"city"`
	State      string         `gorm:"size:2" json:"state"`
	Reference  string         `gorm:"size:200" json:"reference"`
	Recipient  string         `gorm:"size:200" json:"recipient"`
	IsDefault  bool           `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
