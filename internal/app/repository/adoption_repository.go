package repository

import (
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

type AdoptionRepository interface {
	Create(application *model.AdoptionApplication) error
	FindByID(id uint) (*model.AdoptionApplication, error)
	FindByPet(petID uint) ([]model.AdoptionApplication, error)
	FindByApplicant(applicantID uint) ([]model.AdoptionApplication, error)
	FindPending() ([]model.AdoptionApplication, error)
	Update(application *model.AdoptionApplication) error
}

type adoptionRepository struct {
	db *gorm.DB
}

func NewAdoptionRepository(db *gorm.DB) AdoptionRepository {
	return &adoptionRepository{db: db}
}

func (r *adoptionRepository) Create(application *model.AdoptionApplication) error {
	if err := r.db.Create(application).Error; err != nil {
		logger.Error("Failed to create adoption application in database", err, map[string]interface{}{
			"pet_id":       application.PetID,
			"applicant_id": application.ApplicantID,
		})
		return err
	}
	return nil
}

func (r *adoptionRepository) FindByID(id uint) (*model.AdoptionApplication, error) {
	var application model.AdoptionApplication
	if err := r.db.First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *adoptionRepository) FindByPet(petID uint) ([]model.AdoptionApplication, error) {
	var applications []model.AdoptionApplication
	err := r.db.Where("pet_id = ?", petID).
		Order("created_at ASC").
		Find(&applications).Error
	if err != nil {
		logger.Error("Failed to list adoption applications for pet", err, map[string]interface{}{
			"pet_id": petID,
		})
		return nil, err
	}
	return applications, nil
}

func (r *adoptionRepository) FindByApplicant(applicantID uint) ([]model.AdoptionApplication, error) {
	var applications []model.AdoptionApplication
	err := r.db.Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		logger.Error("Failed to list adoption applications for applicant", err, map[string]interface{}{
			"applicant_id": applicantID,
		})
		return nil, err
	}
	return applications, nil
}

func (r *adoptionRepository) FindPending() ([]model.AdoptionApplication, error) {
	var applications []model.AdoptionApplication
	err := r.db.Where("status = ?", model.AdoptionStatusPending).
		Order("created_at ASC").
		Find(&applications).Error
	if err != nil {
		logger.Error("Failed to list pending adoption applications", err, nil)
		return nil, err
	}
	return applications, nil
}

func (r *adoptionRepository) Update(application *model.AdoptionApplication) error {
	if err := r.db.Save(application).Error; err != nil {
		logger.Error("Failed to update adoption application in database", err, map[string]interface{}{
			"application_id": application.ID,
		})
		return err
	}
	return nil
}
