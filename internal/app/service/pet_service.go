package service

import (
	"errors"
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrVaccineNotFound      = errors.New("vaccine record not found")
	ErrConsultationNotFound = errors.New("consultation record not found")
)

// PetInput carries the writable pet fields. Photo is raw image bytes; it is
// compressed before storage.
type PetInput struct {
	Name        string
	Breed       string
	Species     string
	Weight      float64
	Sex         string
	DOB         *time.Time
	Description string
	ForAdoption bool
	Photo       []byte
	PhotoMime   string
}

// VaccineInput records one vaccine application. NextDue is the optional
// booster date.
type VaccineInput struct {
	Name    string
	Date    time.Time
	NextDue *time.Time
	Notes   string
}

type ConsultationInput struct {
	Date   time.Time
	Reason string
	Notes  string
}

type PetService interface {
	Create(ownerID uint, input PetInput) (*model.Pet, error)
	GetByID(id uint) (*model.Pet, error)
	GetOwned(id, ownerID uint) (*model.Pet, error)
	ListByOwner(ownerID uint) ([]model.Pet, error)
	Update(id, ownerID uint, input PetInput) (*model.Pet, error)
	Delete(id, ownerID uint, actorIsAdmin bool) error
	AddVaccine(petID, actorID uint, actorIsAdmin bool, input VaccineInput) (*model.Vaccine, error)
	RemoveVaccine(petID, vaccineID, actorID uint, actorIsAdmin bool) error
	AddConsultation(petID, actorID uint, actorIsAdmin bool, input ConsultationInput) (*model.Consultation, error)
	RemoveConsultation(petID, consultationID, actorID uint, actorIsAdmin bool) error
}

type petService struct {
	petRepo repository.PetRepository
}

func NewPetService(petRepo repository.PetRepository) PetService {
	return &petService{petRepo: petRepo}
}

func (s *petService) Create(ownerID uint, input PetInput) (*model.Pet, error) {
	pet := &model.Pet{
		Name:        input.Name,
		Breed:       input.Breed,
		Species:     input.Species,
		Weight:      input.Weight,
		Sex:         input.Sex,
		DOB:         input.DOB,
		Description: input.Description,
		ForAdoption: input.ForAdoption,
		OwnerID:     &ownerID,
	}
	if len(input.Photo) > 0 {
		if err := pet.SetPhoto(input.Photo, input.PhotoMime); err != nil {
			logger.Error("Failed to compress pet photo", err, nil)
			return nil, err
		}
	}
	if err := s.petRepo.Create(pet); err != nil {
		return nil, err
	}
	logger.Info("Pet registered", map[string]interface{}{
		"pet_id":   pet.ID,
		"owner_id": ownerID,
		"name":     pet.Name,
	})
	return pet, nil
}

// GetByID loads a pet with its vaccination and consultation history.
func (s *petService) GetByID(id uint) (*model.Pet, error) {
	pet, err := s.petRepo.FindByIDWithHistory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

// GetOwned loads a pet and verifies ownership.
func (s *petService) GetOwned(id, ownerID uint) (*model.Pet, error) {
	pet, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID == nil || *pet.OwnerID != ownerID {
		return nil, ErrPetNotOwned
	}
	return pet, nil
}

func (s *petService) ListByOwner(ownerID uint) ([]model.Pet, error) {
	return s.petRepo.FindByOwner(ownerID)
}

func (s *petService) Update(id, ownerID uint, input PetInput) (*model.Pet, error) {
	pet, err := s.GetOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		pet.Name = input.Name
	}
	if input.Breed != "" {
		pet.Breed = input.Breed
	}
	if input.Species != "" {
		pet.Species = input.Species
	}
	if input.Weight > 0 {
		pet.Weight = input.Weight
	}
	if input.Sex != "" {
		pet.Sex = input.Sex
	}
	if input.DOB != nil {
		pet.DOB = input.DOB
	}
	if input.Description != "" {
		pet.Description = input.Description
	}
	pet.ForAdoption = input.ForAdoption
	if len(input.Photo) > 0 {
		if err := pet.SetPhoto(input.Photo, input.PhotoMime); err != nil {
			return nil, err
		}
	}

	if err := s.petRepo.Update(pet); err != nil {
		return nil, err
	}
	logger.Info("Pet updated", map[string]interface{}{
		"pet_id": pet.ID,
	})
	return pet, nil
}

func (s *petService) Delete(id, ownerID uint, actorIsAdmin bool) error {
	pet, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !actorIsAdmin && (pet.OwnerID == nil || *pet.OwnerID != ownerID) {
		return ErrPetNotOwned
	}
	if err := s.petRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Pet deleted", map[string]interface{}{
		"pet_id":   id,
		"actor_id": ownerID,
	})
	return nil
}

// managedPet loads a pet the actor may edit the history of: its owner or an
// admin.
func (s *petService) managedPet(petID, actorID uint, actorIsAdmin bool) (*model.Pet, error) {
	pet, err := s.petRepo.FindByID(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if !actorIsAdmin && (pet.OwnerID == nil || *pet.OwnerID != actorID) {
		return nil, ErrPetNotOwned
	}
	return pet, nil
}

func (s *petService) AddVaccine(petID, actorID uint, actorIsAdmin bool, input VaccineInput) (*model.Vaccine, error) {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	if _, err := s.managedPet(petID, actorID, actorIsAdmin); err != nil {
		return nil, err
	}

	vaccine := &model.Vaccine{
		PetID:   petID,
		Name:    input.Name,
		Date:    input.Date,
		NextDue: input.NextDue,
		Notes:   input.Notes,
	}
	if err := s.petRepo.AddVaccine(vaccine); err != nil {
		return nil, err
	}
	logger.Info("Vaccine recorded", map[string]interface{}{
		"pet_id":     petID,
		"vaccine_id": vaccine.ID,
		"name":       vaccine.Name,
	})
	return vaccine, nil
}

func (s *petService) RemoveVaccine(petID, vaccineID, actorID uint, actorIsAdmin bool) error {
	if _, err := s.managedPet(petID, actorID, actorIsAdmin); err != nil {
		return err
	}
	if err := s.petRepo.RemoveVaccine(petID, vaccineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVaccineNotFound
		}
		return err
	}
	logger.Info("Vaccine removed", map[string]interface{}{
		"pet_id":     petID,
		"vaccine_id": vaccineID,
	})
	return nil
}

func (s *petService) AddConsultation(petID, actorID uint, actorIsAdmin bool, input ConsultationInput) (*model.Consultation, error) {
	if input.Date.IsZero() {
		return nil, &MissingFieldsError{Fields: []string{"date"}}
	}

	if _, err := s.managedPet(petID, actorID, actorIsAdmin); err != nil {
		return nil, err
	}

	consultation := &model.Consultation{
		PetID:  petID,
		Date:   input.Date,
		Reason: input.Reason,
		Notes:  input.Notes,
	}
	if err := s.petRepo.AddConsultation(consultation); err != nil {
		return nil, err
	}
	logger.Info("Consultation recorded", map[string]interface{}{
		"pet_id":          petID,
		"consultation_id": consultation.ID,
	})
	return consultation, nil
}

func (s *petService) RemoveConsultation(petID, consultationID, actorID uint, actorIsAdmin bool) error {
	if _, err := s.managedPet(petID, actorID, actorIsAdmin); err != nil {
		return err
	}
	if err := s.petRepo.RemoveConsultation(petID, consultationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConsultationNotFound
		}
		return err
	}
	logger.Info("Consultation removed", map[string]interface{}{
		"pet_id":          petID,
		"consultation_id": consultationID,
	})
	return nil
}
