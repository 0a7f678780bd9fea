package model

import "time"

// Vaccine is one application in a pet's vaccination history. NextDue, when
// set, is the booster date. Rows are removed outright rather than
// soft-deleted: a mistyped entry should leave no trace in the history.
type Vaccine struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	PetID     uint       `gorm:"not null;index" json:"pet_id"`
	Name      string     `gorm:"size:120;not null" json:"name"`
	Date      time.Time  `gorm:"type:date;not null" json:"date"`
	NextDue   *time.Time `gorm:"type:date" json:"next,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Pet Pet `gorm:"foreignKey:PetID" json:"-"`
}

func (Vaccine) TableName() string {
	return "vaccines"
}
