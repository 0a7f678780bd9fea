package service

import (
	"errors"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("adoption application not found")
	ErrPetNotForAdoption    = errors.New("pet is not available for adoption")
	ErrApplicationNotOpen   = errors.New("adoption application already decided")
	ErrDuplicateApplication = errors.New("user already applied for this pet")
)

type AdoptionService interface {
	ListAvailablePets() ([]model.Pet, error)
	Apply(petID, applicantID uint, message string) (*model.AdoptionApplication, error)
	ListByApplicant(applicantID uint) ([]model.AdoptionApplication, error)
	ListPending() ([]model.AdoptionApplication, error)
	Approve(applicationID uint) (*model.AdoptionApplication, error)
	Reject(applicationID uint) (*model.AdoptionApplication, error)
}

type adoptionService struct {
	adoptionRepo repository.AdoptionRepository
	petRepo      repository.PetRepository
	db           *gorm.DB
}

func NewAdoptionService(
	adoptionRepo repository.AdoptionRepository,
	petRepo repository.PetRepository,
	db *gorm.DB,
) AdoptionService {
	return &adoptionService{
		adoptionRepo: adoptionRepo,
		petRepo:      petRepo,
		db:           db,
	}
}

func (s *adoptionService) ListAvailablePets() ([]model.Pet, error) {
	return s.petRepo.FindForAdoption()
}

// Apply files an adoption application for an available pet. One open
// application per user per pet.
func (s *adoptionService) Apply(petID, applicantID uint, message string) (*model.AdoptionApplication, error) {
	pet, err := s.petRepo.FindByID(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if !pet.ForAdoption || pet.Adopted {
		logger.Warn("Adoption application rejected: pet not available", map[string]interface{}{
			"pet_id":       petID,
			"applicant_id": applicantID,
		})
		return nil, ErrPetNotForAdoption
	}

	existing, err := s.adoptionRepo.FindByPet(petID)
	if err != nil {
		return nil, err
	}
	for _, app := range existing {
		if app.ApplicantID == applicantID && app.Status == model.AdoptionStatusPending {
			return nil, ErrDuplicateApplication
		}
	}

	application := &model.AdoptionApplication{
		PetID:       petID,
		ApplicantID: applicantID,
		Message:     message,
		Status:      model.AdoptionStatusPending,
	}
	if err := s.adoptionRepo.Create(application); err != nil {
		return nil, err
	}
	logger.Info("Adoption application filed", map[string]interface{}{
		"application_id": application.ID,
		"pet_id":         petID,
		"applicant_id":   applicantID,
	})
	return application, nil
}

func (s *adoptionService) ListByApplicant(applicantID uint) ([]model.AdoptionApplication, error) {
	return s.adoptionRepo.FindByApplicant(applicantID)
}

func (s *adoptionService) ListPending() ([]model.AdoptionApplication, error) {
	return s.adoptionRepo.FindPending()
}

// Approve marks the application approved, hands the pet over to the
// applicant and rejects every other pending application for the same pet,
// all in one transaction.
func (s *adoptionService) Approve(applicationID uint) (*model.AdoptionApplication, error) {
	application, err := s.adoptionRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if application.Status != model.AdoptionStatusPending {
		return nil, ErrApplicationNotOpen
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var pet model.Pet
		if err := tx.First(&pet, application.PetID).Error; err != nil {
			return err
		}
		if !pet.ForAdoption || pet.Adopted {
			return ErrPetNotForAdoption
		}

		if err := tx.Model(&pet).Updates(map[string]interface{}{
			"adopted":      true,
			"for_adoption": false,
			"owner_id":     application.ApplicantID,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.AdoptionApplication{}).
			Where("id = ?", application.ID).
			Update("status", model.AdoptionStatusApproved).Error; err != nil {
			return err
		}

		return tx.Model(&model.AdoptionApplication{}).
			Where("pet_id = ? AND id <> ? AND status = ?",
				application.PetID, application.ID, model.AdoptionStatusPending).
			Update("status", model.AdoptionStatusRejected).Error
	})
	if err != nil {
		if errors.Is(err, ErrPetNotForAdoption) {
			return nil, err
		}
		logger.Error("Failed to approve adoption application", err, map[string]interface{}{
			"application_id": applicationID,
		})
		return nil, err
	}

	application.Status = model.AdoptionStatusApproved
	logger.Info("Adoption application approved", map[string]interface{}{
		"application_id": applicationID,
		"pet_id":         application.PetID,
		"new_owner_id":   application.ApplicantID,
	})
	return application, nil
}

func (s *adoptionService) Reject(applicationID uint) (*model.AdoptionApplication, error) {
	application, err := s.adoptionRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if application.Status != model.AdoptionStatusPending {
		return nil, ErrApplicationNotOpen
	}

	application.Status = model.AdoptionStatusRejected
	if err := s.adoptionRepo.Update(application); err != nil {
		return nil, err
	}
	logger.Info("Adoption application rejected", map[string]interface{}{
		"application_id": applicationID,
	})
	return application, nil
}
