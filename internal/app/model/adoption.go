package model

import (
	"time"

	"gorm.io/gorm"
)

type AdoptionStatus string

const (
	AdoptionStatusPending  AdoptionStatus = "pending"
	AdoptionStatusApproved AdoptionStatus = "approved"
	AdoptionStatusRejected AdoptionStatus = "rejected"
)

// AdoptionApplication is a user's request to adopt a pet listed for adoption.
// Approval marks the pet adopted and assigns the applicant as owner.
type AdoptionApplication struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	PetID       uint           `gorm:"not null;index" json:"pet_id"`
	ApplicantID uint           `gorm:"not null;index" json:"applicant_id"`
	Message     string         `gorm:"type:text" json:"message"`
	Status      AdoptionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Pet       Pet  `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Applicant User `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (AdoptionApplication) TableName() string {
	return "adoption_applications"
}
