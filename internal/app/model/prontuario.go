package model

import (
	"time"

	"gorm.io/gorm"
)

// Prontuario is a clinical record entry for a pet, authored by a
// veterinarian. Schedulings reference it back once completed.
type Prontuario struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	PetID       uint           `gorm:"not null;index" json:"pet_id"`
	VetID       *uint          `gorm:"index" json:"vet_id,omitempty"`
	Anamnese    string         `gorm:"type:text;not null" json:"anamnese"`
	Diagnostico string         `gorm:"type:text;not null" json:"diagnostico"`
	Tratamento  string         `gorm:"type:text;not null" json:"tratamento"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Pet         Pet           `gorm:"foreignKey:PetID" json:"-"`
	Vet         *Veterinarian `gorm:"foreignKey:VetID" json:"vet,omitempty"`
	Schedulings []Scheduling  `gorm:"foreignKey:ProntuarioID" json:"schedulings,omitempty"`
}

func (Prontuario) TableName() string {
	return "prontuarios"
}
