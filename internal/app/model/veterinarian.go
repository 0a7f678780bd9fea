package model

import (
	"time"

	"gorm.io/gorm"
)

// Veterinarian is the professional profile attached to a vet-role user.
// Credentials live on the users table; this row carries the clinical identity.
type Veterinarian struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	CRMV      string         `gorm:"size:20;uniqueIndex;not null" json:"crmv"`
	Specialty string         `gorm:"size:100" json:"specialty"`
	Phone     string         `gorm:"size:20" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Veterinarian) TableName() string {
	return "veterinarians"
}
