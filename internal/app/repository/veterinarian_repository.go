package repository

import (
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

type VeterinarianRepository interface {
	Create(vet *model.Veterinarian) error
	FindByID(id uint) (*model.Veterinarian, error)
	FindByUserID(userID uint) (*model.Veterinarian, error)
	FindActive() ([]model.Veterinarian, error)
}

type veterinarianRepository struct {
	db *gorm.DB
}

func NewVeterinarianRepository(db *gorm.DB) VeterinarianRepository {
	return &veterinarianRepository{db: db}
}

func (r *veterinarianRepository) Create(vet *model.Veterinarian) error {
	if err := r.db.Create(vet).Error; err != nil {
		logger.Error("Failed to create veterinarian in database", err, map[string]interface{}{
			"user_id": vet.UserID,
			"crmv":    vet.CRMV,
		})
		return err
	}
	return nil
}

func (r *veterinarianRepository) FindByID(id uint) (*model.Veterinarian, error) {
	var vet model.Veterinarian
	if err := r.db.Preload("User").First(&vet, id).Error; err != nil {
		return nil, err
	}
	return &vet, nil
}

func (r *veterinarianRepository) FindByUserID(userID uint) (*model.Veterinarian, error) {
	var vet model.Veterinarian
	err := r.db.Where("user_id = ?", userID).First(&vet).Error
	if err != nil {
		return nil, err
	}
	return &vet, nil
}

func (r *veterinarianRepository) FindActive() ([]model.Veterinarian, error) {
	var vets []model.Veterinarian
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&vets).Error
	if err != nil {
		logger.Error("Failed to list veterinarians", err, nil)
		return nil, err
	}
	return vets, nil
}
