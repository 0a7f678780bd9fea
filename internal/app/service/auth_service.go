package service

import (
	"errors"

	"github.com/appessoa/PetGo/config"
	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/appessoa/PetGo/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is deactivated")
)

// RegisterInput carries the signup form. Vet fields are only consulted when
// Role is vet.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Role      model.UserRole
	VetName   string
	CRMV      string
	Specialty string
	Phone     string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Refresh(refreshToken string) (*util.TokenPair, error)
	GetProfile(userID uint) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	vetRepo  repository.VeterinarianRepository
	jwtCfg   config.JWTConfig
}

func NewAuthService(
	userRepo repository.UserRepository,
	vetRepo repository.VeterinarianRepository,
	jwtCfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo: userRepo,
		vetRepo:  vetRepo,
		jwtCfg:   jwtCfg,
	}
}

// Register creates a new account. Registering with the vet role also creates
// the veterinarian profile so the account can author medical records.
func (s *authService) Register(input RegisterInput) (*model.User, error) {
	logger.Info("Registering new user", map[string]interface{}{
		"email": input.Email,
		"role":  input.Role,
	})

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		logger.Warn("Registration rejected: email already in use", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		logger.Warn("Registration rejected: username already in use", map[string]interface{}{
			"username": input.Username,
		})
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, nil)
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if role == model.RoleVet {
		vetName := input.VetName
		if vetName == "" {
			vetName = input.Username
		}
		vet := &model.Veterinarian{
			UserID:    user.ID,
			Name:      vetName,
			CRMV:      input.CRMV,
			Specialty: input.Specialty,
			Phone:     input.Phone,
			IsActive:  true,
		}
		if err := s.vetRepo.Create(vet); err != nil {
			logger.Error("Failed to create veterinarian profile", err, map[string]interface{}{
				"user_id": user.ID,
			})
			return nil, err
		}
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})
	return user, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown email", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.IsActive {
		logger.Warn("Login failed: account deactivated", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrUserInactive
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, tokens, nil
}

// Refresh issues a new token pair from a valid refresh token.
func (s *authService) Refresh(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtCfg.Secret)
	if err != nil {
		logger.Warn("Refresh token rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtCfg.Secret, s.jwtCfg.AccessTokenExpiry, s.jwtCfg.RefreshTokenExpiry,
	)
}

func (s *authService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
