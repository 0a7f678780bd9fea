package service

import (
	"errors"
	"regexp"
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSchedulingNotFound     = errors.New("scheduling not found")
	ErrInvalidService         = errors.New("unknown service kind")
	ErrInvalidStatus          = errors.New("unknown scheduling status")
	ErrPastDate               = errors.New("scheduling date is in the past")
	ErrInvalidTime            = errors.New("time must be in HH:MM format")
	ErrPetNotFound            = errors.New("pet not found")
	ErrPetNotOwned            = errors.New("pet belongs to another user")
	ErrSchedulingAccessDenied = errors.New("scheduling belongs to another user")
	ErrVetNotFound            = errors.New("veterinarian not found")
)

var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SchedulingInput carries the fields a client may set when booking or
// updating an appointment.
type SchedulingInput struct {
	PetID   uint
	Service model.ServiceKind
	Date    time.Time
	Time    string
	Notes   string
	VetID   *uint
}

type SchedulingService interface {
	Create(userID uint, input SchedulingInput) (*model.Scheduling, error)
	GetByID(id, actorID uint, actorIsAdmin bool) (*model.Scheduling, error)
	ListByUser(userID uint, status string) ([]model.Scheduling, error)
	ListForVet(actorUserID uint, status string) ([]model.Scheduling, error)
	Update(id uint, input SchedulingInput, actorID uint, actorIsAdmin bool) (*model.Scheduling, error)
	UpdateStatus(id uint, status model.SchedulingStatus, actorID uint, actorIsAdmin bool) (*model.Scheduling, error)
	Delete(id, actorID uint, actorIsAdmin bool) error
}

type schedulingService struct {
	schedulingRepo repository.SchedulingRepository
	petRepo        repository.PetRepository
	vetRepo        repository.VeterinarianRepository
}

func NewSchedulingService(
	schedulingRepo repository.SchedulingRepository,
	petRepo repository.PetRepository,
	vetRepo repository.VeterinarianRepository,
) SchedulingService {
	return &schedulingService{
		schedulingRepo: schedulingRepo,
		petRepo:        petRepo,
		vetRepo:        vetRepo,
	}
}

// ownPet loads a pet and checks it belongs to the user.
func (s *schedulingService) ownPet(userID, petID uint) (*model.Pet, error) {
	pet, err := s.petRepo.FindByID(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if pet.OwnerID == nil || *pet.OwnerID != userID {
		logger.Warn("Pet ownership check failed", map[string]interface{}{
			"user_id": userID,
			"pet_id":  petID,
		})
		return nil, ErrPetNotOwned
	}
	return pet, nil
}

func validateAppointmentSlot(date time.Time, timeOfDay string) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return ErrPastDate
	}
	if !timeRe.MatchString(timeOfDay) {
		return ErrInvalidTime
	}
	return nil
}

func (s *schedulingService) Create(userID uint, input SchedulingInput) (*model.Scheduling, error) {
	if input.Service == "" {
		return nil, ErrInvalidService
	}
	if err := validateAppointmentSlot(input.Date, input.Time); err != nil {
		logger.Warn("Rejected scheduling slot", map[string]interface{}{
			"user_id": userID,
			"date":    input.Date.Format("2006-01-02"),
			"time":    input.Time,
			"error":   err.Error(),
		})
		return nil, err
	}
	if _, err := s.ownPet(userID, input.PetID); err != nil {
		return nil, err
	}
	if input.VetID != nil {
		if _, err := s.vetRepo.FindByID(*input.VetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVetNotFound
			}
			return nil, err
		}
	}

	scheduling := &model.Scheduling{
		UserID:  userID,
		PetID:   input.PetID,
		VetID:   input.VetID,
		Service: input.Service,
		Date:    input.Date,
		Time:    input.Time,
		Notes:   input.Notes,
		Status:  model.SchedulingStatusScheduled,
	}
	if err := s.schedulingRepo.Create(scheduling); err != nil {
		return nil, err
	}

	logger.Info("Appointment booked", map[string]interface{}{
		"scheduling_id": scheduling.ID,
		"user_id":       userID,
		"pet_id":        input.PetID,
		"service":       input.Service,
		"date":          input.Date.Format("2006-01-02"),
		"time":          input.Time,
	})
	return scheduling, nil
}

// isAssignedVet reports whether the actor's veterinarian profile is the one
// assigned to the appointment. A vet has no standing on appointments assigned
// to someone else or to nobody.
func (s *schedulingService) isAssignedVet(scheduling *model.Scheduling, actorID uint) bool {
	if scheduling.VetID == nil {
		return false
	}
	vet, err := s.vetRepo.FindByUserID(actorID)
	if err != nil {
		return false
	}
	return vet.ID == *scheduling.VetID
}

// GetByID returns the appointment if the actor owns it, is the assigned
// veterinarian, or is an admin.
func (s *schedulingService) GetByID(id, actorID uint, actorIsAdmin bool) (*model.Scheduling, error) {
	scheduling, err := s.schedulingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchedulingNotFound
		}
		return nil, err
	}
	if scheduling.UserID != actorID && !actorIsAdmin && !s.isAssignedVet(scheduling, actorID) {
		return nil, ErrSchedulingAccessDenied
	}
	return scheduling, nil
}

func (s *schedulingService) ListByUser(userID uint, status string) ([]model.Scheduling, error) {
	return s.schedulingRepo.FindByUser(userID, status)
}

// ListForVet returns the appointments assigned to the acting user's
// veterinarian profile.
func (s *schedulingService) ListForVet(actorUserID uint, status string) ([]model.Scheduling, error) {
	vet, err := s.vetRepo.FindByUserID(actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVetNotFound
		}
		return nil, err
	}
	return s.schedulingRepo.FindByVet(vet.ID, status)
}

// Update rewrites the mutable fields of an appointment. Completed and
// cancelled appointments are frozen. A pet change re-checks that the new pet
// belongs to the appointment's owner.
func (s *schedulingService) Update(id uint, input SchedulingInput, actorID uint, actorIsAdmin bool) (*model.Scheduling, error) {
	scheduling, err := s.GetByID(id, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}
	if scheduling.Status == model.SchedulingStatusCompleted ||
		scheduling.Status == model.SchedulingStatusCancelled {
		return nil, ErrInvalidStatus
	}

	if input.PetID != 0 && input.PetID != scheduling.PetID {
		if _, err := s.ownPet(scheduling.UserID, input.PetID); err != nil {
			return nil, err
		}
		scheduling.PetID = input.PetID
	}
	if input.Service != "" {
		scheduling.Service = input.Service
	}
	if !input.Date.IsZero() || input.Time != "" {
		date := scheduling.Date
		if !input.Date.IsZero() {
			date = input.Date
		}
		timeOfDay := scheduling.Time
		if input.Time != "" {
			timeOfDay = input.Time
		}
		if err := validateAppointmentSlot(date, timeOfDay); err != nil {
			return nil, err
		}
		scheduling.Date = date
		scheduling.Time = timeOfDay
	}
	if input.Notes != "" {
		scheduling.Notes = input.Notes
	}
	if input.VetID != nil {
		if _, err := s.vetRepo.FindByID(*input.VetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVetNotFound
			}
			return nil, err
		}
		scheduling.VetID = input.VetID
	}

	if err := s.schedulingRepo.Update(scheduling); err != nil {
		return nil, err
	}
	logger.Info("Appointment updated", map[string]interface{}{
		"scheduling_id": scheduling.ID,
		"actor_id":      actorID,
	})
	return scheduling, nil
}

// UpdateStatus moves an appointment through its lifecycle. Owners may only
// cancel; the assigned veterinarian and admins may set any status.
func (s *schedulingService) UpdateStatus(id uint, status model.SchedulingStatus, actorID uint, actorIsAdmin bool) (*model.Scheduling, error) {
	scheduling, err := s.GetByID(id, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	staff := actorIsAdmin || s.isAssignedVet(scheduling, actorID)
	if !staff && status != model.SchedulingStatusCancelled {
		logger.Warn("Status change denied: owners may only cancel appointments", map[string]interface{}{
			"scheduling_id": id,
			"actor_id":      actorID,
			"to":            status,
		})
		return nil, ErrSchedulingAccessDenied
	}

	scheduling.Status = status
	if err := s.schedulingRepo.Update(scheduling); err != nil {
		return nil, err
	}
	logger.Info("Appointment status updated", map[string]interface{}{
		"scheduling_id": id,
		"to":            status,
	})
	return scheduling, nil
}

func (s *schedulingService) Delete(id, actorID uint, actorIsAdmin bool) error {
	if _, err := s.GetByID(id, actorID, actorIsAdmin); err != nil {
		return err
	}
	if err := s.schedulingRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Appointment deleted", map[string]interface{}{
		"scheduling_id": id,
		"actor_id":      actorID,
	})
	return nil
}
