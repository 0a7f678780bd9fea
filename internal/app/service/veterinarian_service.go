package service

import (
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
)

// VeterinarianService exposes the vet directory clients browse when booking
// an appointment. Profile creation happens through registration with the vet
// role; see AuthService.
type VeterinarianService interface {
	ListAvailable() ([]model.Veterinarian, error)
}

type veterinarianService struct {
	vetRepo repository.VeterinarianRepository
}

func NewVeterinarianService(vetRepo repository.VeterinarianRepository) VeterinarianService {
	return &veterinarianService{vetRepo: vetRepo}
}

func (s *veterinarianService) ListAvailable() ([]model.Veterinarian, error) {
	return s.vetRepo.FindActive()
}
