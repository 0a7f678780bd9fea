package repository

import (
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

type PetRepository interface {
	Create(pet *model.Pet) error
	FindByID(id uint) (*model.Pet, error)
	FindByIDWithHistory(id uint) (*model.Pet, error)
	FindByOwner(ownerID uint) ([]model.Pet, error)
	FindForAdoption() ([]model.Pet, error)
	Update(pet *model.Pet) error
	Delete(id uint) error
	AddVaccine(vaccine *model.Vaccine) error
	RemoveVaccine(petID, vaccineID uint) error
	AddConsultation(consultation *model.Consultation) error
	RemoveConsultation(petID, consultationID uint) error
}

type petRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(pet *model.Pet) error {
	if err := r.db.Create(pet).Error; err != nil {
		logger.Error("Failed to create pet in database", err, map[string]interface{}{
			"name": pet.Name,
		})
		return err
	}
	return nil
}

func (r *petRepository) FindByID(id uint) (*model.Pet, error) {
	var pet model.Pet
	if err := r.db.First(&pet, id).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

// FindByIDWithHistory loads a pet together with its vaccination and
// consultation history, newest entries first.
func (r *petRepository) FindByIDWithHistory(id uint) (*model.Pet, error) {
	var pet model.Pet
	err := r.db.
		Preload("Vaccines", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Preload("Consultations", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		First(&pet, id).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) FindByOwner(ownerID uint) ([]model.Pet, error) {
	var pets []model.Pet
	err := r.db.Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&pets).Error
	if err != nil {
		logger.Error("Failed to list pets for owner", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) FindForAdoption() ([]model.Pet, error) {
	var pets []model.Pet
	err := r.db.Where("for_adoption = ? AND adopted = ?", true, false).
		Order("created_at DESC").
		Find(&pets).Error
	if err != nil {
		logger.Error("Failed to list pets for adoption", err, nil)
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) Update(pet *model.Pet) error {
	if err := r.db.Save(pet).Error; err != nil {
		logger.Error("Failed to update pet in database", err, map[string]interface{}{
			"pet_id": pet.ID,
		})
		return err
	}
	return nil
}

func (r *petRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Pet{}, id).Error; err != nil {
		logger.Error("Failed to delete pet from database", err, map[string]interface{}{
			"pet_id": id,
		})
		return err
	}
	return nil
}

func (r *petRepository) AddVaccine(vaccine *model.Vaccine) error {
	if err := r.db.Create(vaccine).Error; err != nil {
		logger.Error("Failed to record vaccine in database", err, map[string]interface{}{
			"pet_id": vaccine.PetID,
			"name":   vaccine.Name,
		})
		return err
	}
	return nil
}

func (r *petRepository) RemoveVaccine(petID, vaccineID uint) error {
	result := r.db.Where("pet_id = ?", petID).Delete(&model.Vaccine{}, vaccineID)
	if result.Error != nil {
		logger.Error("Failed to remove vaccine from database", result.Error, map[string]interface{}{
			"pet_id":     petID,
			"vaccine_id": vaccineID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *petRepository) AddConsultation(consultation *model.Consultation) error {
	if err := r.db.Create(consultation).Error; err != nil {
		logger.Error("Failed to record consultation in database", err, map[string]interface{}{
			"pet_id": consultation.PetID,
		})
		return err
	}
	return nil
}

func (r *petRepository) RemoveConsultation(petID, consultationID uint) error {
	result := r.db.Where("pet_id = ?", petID).Delete(&model.Consultation{}, consultationID)
	if result.Error != nil {
		logger.Error("Failed to remove consultation from database", result.Error, map[string]interface{}{
			"pet_id":          petID,
			"consultation_id": consultationID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
