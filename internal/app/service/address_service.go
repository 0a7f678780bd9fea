package service

import (
	"errors"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressInput carries the writable address fields.
type AddressInput struct {
	CEP        string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	Reference  string
	Recipient  string
	IsDefault  bool
}

type AddressService interface {
	Create(userID uint, input AddressInput) (*model.Address, error)
	ListByUser(userID uint) ([]model.Address, error)
	Update(id, userID uint, input AddressInput) (*model.Address, error)
	Delete(id, userID uint) error
	SetDefault(id, userID uint) (*model.Address, error)
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) owned(id, userID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

func (s *addressService) Create(userID uint, input AddressInput) (*model.Address, error) {
	if input.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}

	address := &model.Address{
		UserID:     userID,
		CEP:        input.CEP,
		Street:     input.Street,
		Number:     input.Number,
		Complement: input.Complement,
		District:   input.District,
		City:       input.City,
		State:      input.State,
		Reference:  input.Reference,
		Recipient:  input.Recipient,
		IsDefault:  input.IsDefault,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	logger.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})
	return address, nil
}

func (s *addressService) ListByUser(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUser(userID)
}

func (s *addressService) Update(id, userID uint, input AddressInput) (*model.Address, error) {
	address, err := s.owned(id, userID)
	if err != nil {
		return nil, err
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}

	address.CEP = input.CEP
	address.Street = input.Street
	address.Number = input.Number
	address.Complement = input.Complement
	address.District = input.District
	address.City = input.City
	address.State = input.State
	address.Reference = input.Reference
	address.Recipient = input.Recipient
	address.IsDefault = input.IsDefault

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	logger.Info("Address updated", map[string]interface{}{
		"address_id": address.ID,
	})
	return address, nil
}

func (s *addressService) Delete(id, userID uint) error {
	if _, err := s.owned(id, userID); err != nil {
		return err
	}
	if err := s.addressRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Address deleted", map[string]interface{}{
		"address_id": id,
		"user_id":    userID,
	})
	return nil
}

func (s *addressService) SetDefault(id, userID uint) (*model.Address, error) {
	address, err := s.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.ClearDefault(userID); err != nil {
		return nil, err
	}
	address.IsDefault = true
	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}
