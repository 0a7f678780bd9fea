package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type ServiceKind string

const (
	ServiceBath       ServiceKind = "bath"
	ServiceVeterinary ServiceKind = "veterinary"
	ServiceWalk       ServiceKind = "walk"
	ServiceHotel      ServiceKind = "hotel"
)

type SchedulingStatus string

const (
	SchedulingStatusScheduled SchedulingStatus = "scheduled"
	SchedulingStatusConfirmed SchedulingStatus = "confirmed"
	SchedulingStatusCompleted SchedulingStatus = "completed"
	SchedulingStatusCancelled SchedulingStatus = "cancelled"
)

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeServiceKind maps pt/en service spellings to the canonical kind.
func NormalizeServiceKind(raw string) (ServiceKind, bool) {
	switch normalizeToken(raw) {
	case "bath", "banho":
		return ServiceBath, true
	case "veterinary", "veterinario", "vet":
		return ServiceVeterinary, true
	case "walk", "passeio":
		return ServiceWalk, true
	case "hotel":
		return ServiceHotel, true
	}
	return "", false
}

// NormalizeSchedulingStatus maps free-text status aliases ("cancel", "c",
// "cancelado", ...) to the canonical vocabulary.
func NormalizeSchedulingStatus(raw string) (SchedulingStatus, bool) {
	switch normalizeToken(raw) {
	case "scheduled", "marcado":
		return SchedulingStatusScheduled, true
	case "confirmed", "confirmado":
		return SchedulingStatusConfirmed, true
	case "completed", "concluido", "done":
		return SchedulingStatusCompleted, true
	case "cancelled", "canceled", "cancelado", "cancel", "c":
		return SchedulingStatusCancelled, true
	}
	return "", false
}

// Scheduling is a booked service appointment for a pet. ProntuarioID is set
// when a medical record is created against the appointment, which also moves
// the status to completed.
type Scheduling struct {
	ID           uint             `gorm:"primarykey" json:"id"`
	UserID       uint             `gorm:"not null;index:idx_scheduling_user_date" json:"user_id"`
	PetID        uint             `gorm:"not null;index" json:"pet_id"`
	VetID        *uint            `gorm:"index" json:"vet_id,omitempty"`
	ProntuarioID *uint            `gorm:"index" json:"prontuario_id,omitempty"`
	Service      ServiceKind      `gorm:"type:varchar(30);not null;index" json:"service"`
	Date         time.Time        `gorm:"type:date;not null;index:idx_scheduling_user_date" json:"date"`
	Time         string           `gorm:"size:5;not null" json:"time"` // HH:MM
	Notes        string           `gorm:"type:text" json:"notes"`
	Status       SchedulingStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	User User          `gorm:"foreignKey:UserID" json:"-"`
	Pet  Pet           `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Vet  *Veterinarian `gorm:"foreignKey:VetID" json:"vet,omitempty"`
}

func (Scheduling) TableName() string {
	return "scheduling"
}
