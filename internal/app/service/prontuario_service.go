package service

import (
	"errors"
	"strings"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProntuarioNotFound    = errors.New("medical record not found")
	ErrSchedulingPetMismatch = errors.New("scheduling is for a different pet")
)

// MissingFieldsError lists every required field absent from a medical record
// submission, so the client hears about all of them at once.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ProntuarioInput carries a medical record submission. SchedulingID, when
// set, links the record to an appointment and completes it.
type ProntuarioInput struct {
	PetID        uint
	VetID        *uint
	SchedulingID *uint
	Anamnese     string
	Diagnostico  string
	Tratamento   string
}

type ProntuarioService interface {
	Create(input ProntuarioInput, actingUserID uint) (*model.Prontuario, error)
	GetByID(id uint) (*model.Prontuario, error)
	ListByPet(petID uint) ([]model.Prontuario, error)
	Update(id uint, input ProntuarioInput) (*model.Prontuario, error)
}

type prontuarioService struct {
	prontuarioRepo repository.ProntuarioRepository
	petRepo        repository.PetRepository
	vetRepo        repository.VeterinarianRepository
	db             *gorm.DB
}

func NewProntuarioService(
	prontuarioRepo repository.ProntuarioRepository,
	petRepo repository.PetRepository,
	vetRepo repository.VeterinarianRepository,
	db *gorm.DB,
) ProntuarioService {
	return &prontuarioService{
		prontuarioRepo: prontuarioRepo,
		petRepo:        petRepo,
		vetRepo:        vetRepo,
		db:             db,
	}
}

func validateProntuarioInput(input ProntuarioInput) error {
	var missing []string
	if input.PetID == 0 {
		missing = append(missing, "pet_id")
	}
	if strings.TrimSpace(input.Anamnese) == "" {
		missing = append(missing, "anamnese")
	}
	if strings.TrimSpace(input.Diagnostico) == "" {
		missing = append(missing, "diagnostico")
	}
	if strings.TrimSpace(input.Tratamento) == "" {
		missing = append(missing, "tratamento")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Create stores a medical record. When the submission names an appointment,
// the record insert, the appointment's prontuario link and its move to
// completed all happen in one transaction. The acting user's veterinarian
// profile is used when no vet is named explicitly.
func (s *prontuarioService) Create(input ProntuarioInput, actingUserID uint) (*model.Prontuario, error) {
	if err := validateProntuarioInput(input); err != nil {
		logger.Warn("Rejected medical record submission", map[string]interface{}{
			"acting_user_id": actingUserID,
			"error":          err.Error(),
		})
		return nil, err
	}

	if _, err := s.petRepo.FindByID(input.PetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	vetID := input.VetID
	if vetID == nil {
		vet, err := s.vetRepo.FindByUserID(actingUserID)
		if err == nil {
			vetID = &vet.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		if _, err := s.vetRepo.FindByID(*vetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVetNotFound
			}
			return nil, err
		}
	}

	prontuario := &model.Prontuario{
		PetID:       input.PetID,
		VetID:       vetID,
		Anamnese:    input.Anamnese,
		Diagnostico: input.Diagnostico,
		Tratamento:  input.Tratamento,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.SchedulingID != nil {
			var scheduling model.Scheduling
			if err := tx.First(&scheduling, *input.SchedulingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrSchedulingNotFound
				}
				return err
			}
			if scheduling.PetID != input.PetID {
				logger.Warn("Medical record rejected: appointment is for another pet", map[string]interface{}{
					"scheduling_id":  scheduling.ID,
					"scheduling_pet": scheduling.PetID,
					"record_pet":     input.PetID,
				})
				return ErrSchedulingPetMismatch
			}

			if err := tx.Create(prontuario).Error; err != nil {
				return err
			}
			return tx.Model(&scheduling).Updates(map[string]interface{}{
				"prontuario_id": prontuario.ID,
				"status":        model.SchedulingStatusCompleted,
			}).Error
		}
		return tx.Create(prontuario).Error
	})
	if err != nil {
		if errors.Is(err, ErrSchedulingNotFound) || errors.Is(err, ErrSchedulingPetMismatch) {
			return nil, err
		}
		logger.Error("Failed to create medical record", err, map[string]interface{}{
			"pet_id": input.PetID,
		})
		return nil, err
	}

	logger.Info("Medical record created", map[string]interface{}{
		"prontuario_id": prontuario.ID,
		"pet_id":        prontuario.PetID,
		"vet_id":        vetID,
		"linked":        input.SchedulingID != nil,
	})
	return prontuario, nil
}

func (s *prontuarioService) GetByID(id uint) (*model.Prontuario, error) {
	prontuario, err := s.prontuarioRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProntuarioNotFound
		}
		return nil, err
	}
	return prontuario, nil
}

func (s *prontuarioService) ListByPet(petID uint) ([]model.Prontuario, error) {
	if _, err := s.petRepo.FindByID(petID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return s.prontuarioRepo.FindByPet(petID)
}

// Update rewrites the clinical text fields of an existing record.
func (s *prontuarioService) Update(id uint, input ProntuarioInput) (*model.Prontuario, error) {
	prontuario, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Anamnese) != "" {
		prontuario.Anamnese = input.Anamnese
	}
	if strings.TrimSpace(input.Diagnostico) != "" {
		prontuario.Diagnostico = input.Diagnostico
	}
	if strings.TrimSpace(input.Tratamento) != "" {
		prontuario.Tratamento = input.Tratamento
	}

	if err := s.prontuarioRepo.Update(prontuario); err != nil {
		return nil, err
	}
	logger.Info("Medical record updated", map[string]interface{}{
		"prontuario_id": prontuario.ID,
	})
	return prontuario, nil
}
