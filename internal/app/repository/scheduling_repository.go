package repository

import (
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

type SchedulingRepository interface {
	Create(scheduling *model.Scheduling) error
	FindByID(id uint) (*model.Scheduling, error)
	FindByUser(userID uint, status string) ([]model.Scheduling, error)
	FindByVet(vetID uint, status string) ([]model.Scheduling, error)
	Update(scheduling *model.Scheduling) error
	Delete(id uint) error
}

type schedulingRepository struct {
	db *gorm.DB
}

func NewSchedulingRepository(db *gorm.DB) SchedulingRepository {
	return &schedulingRepository{db: db}
}

func (r *schedulingRepository) Create(scheduling *model.Scheduling) error {
	if err := r.db.Create(scheduling).Error; err != nil {
		logger.Error("Failed to create scheduling in database", err, map[string]interface{}{
			"user_id": scheduling.UserID,
			"pet_id":  scheduling.PetID,
		})
		return err
	}
	logger.Debug("Scheduling created in database", map[string]interface{}{
		"scheduling_id": scheduling.ID,
		"service":       scheduling.Service,
	})
	return nil
}

func (r *schedulingRepository) FindByID(id uint) (*model.Scheduling, error) {
	var scheduling model.Scheduling
	err := r.db.Preload("Pet").Preload("Vet").First(&scheduling, id).Error
	if err != nil {
		return nil, err
	}
	return &scheduling, nil
}

func (r *schedulingRepository) FindByUser(userID uint, status string) ([]model.Scheduling, error) {
	query := r.db.Preload("Pet").Preload("Vet").
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var schedulings []model.Scheduling
	err := query.Order("date ASC, time ASC").Find(&schedulings).Error
	if err != nil {
		logger.Error("Failed to list schedulings for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return schedulings, nil
}

func (r *schedulingRepository) FindByVet(vetID uint, status string) ([]model.Scheduling, error) {
	query := r.db.Preload("Pet").Preload("Vet").
		Where("vet_id = ?", vetID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var schedulings []model.Scheduling
	err := query.Order("date ASC, time ASC").Find(&schedulings).Error
	if err != nil {
		logger.Error("Failed to list schedulings for vet", err, map[string]interface{}{
			"vet_id": vetID,
		})
		return nil, err
	}
	return schedulings, nil
}

func (r *schedulingRepository) Update(scheduling *model.Scheduling) error {
	if err := r.db.Save(scheduling).Error; err != nil {
		logger.Error("Failed to update scheduling in database", err, map[string]interface{}{
			"scheduling_id": scheduling.ID,
		})
		return err
	}
	return nil
}

func (r *schedulingRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Scheduling{}, id).Error; err != nil {
		logger.Error("Failed to delete scheduling from database", err, map[string]interface{}{
			"scheduling_id": id,
		})
		return err
	}
	return nil
}
