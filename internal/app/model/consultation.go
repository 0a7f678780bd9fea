package model

import "time"

// Consultation is a visit entry in a pet's clinical history. Lighter than a
// Prontuario: a date, a reason, free-text notes.
type Consultation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PetID     uint      `gorm:"not null;index" json:"pet_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Reason    string    `gorm:"size:200" json:"reason"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`

	Pet Pet `gorm:"foreignKey:PetID" json:"-"`
}

func (Consultation) TableName() string {
	return "consultations"
}
