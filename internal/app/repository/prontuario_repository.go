package repository

import (
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

type ProntuarioRepository interface {
	FindByID(id uint) (*model.Prontuario, error)
	FindByPet(petID uint) ([]model.Prontuario, error)
	Update(prontuario *model.Prontuario) error
}

type prontuarioRepository struct {
	db *gorm.DB
}

func NewProntuarioRepository(db *gorm.DB) ProntuarioRepository {
	return &prontuarioRepository{db: db}
}

func (r *prontuarioRepository) FindByID(id uint) (*model.Prontuario, error) {
	var prontuario model.Prontuario
	err := r.db.Preload("Pet").Preload("Vet").First(&prontuario, id).Error
	if err != nil {
		return nil, err
	}
	return &prontuario, nil
}

func (r *prontuarioRepository) FindByPet(petID uint) ([]model.Prontuario, error) {
	var prontuarios []model.Prontuario
	err := r.db.Preload("Vet").
		Where("pet_id = ?", petID).
		Order("created_at DESC").
		Find(&prontuarios).Error
	if err != nil {
		logger.Error("Failed to list medical records for pet", err, map[string]interface{}{
			"pet_id": petID,
		})
		return nil, err
	}
	return prontuarios, nil
}

func (r *prontuarioRepository) Update(prontuario *model.Prontuario) error {
	if err := r.db.Save(prontuario).Error; err != nil {
		logger.Error("Failed to update medical record in database", err, map[string]interface{}{
			"prontuario_id": prontuario.ID,
		})
		return err
	}
	return nil
}
