package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/pkg/jwt"
	"github.com/inkwell/inkwell-backend/pkg/logger"
)

// AuthService handles registration and token issuance
type AuthService interface {
	Register(req *domain.RegisterRequest) (*domain.User, error)
	Login(req *domain.LoginRequest) (*domain.LoginResponse, error)
	Refresh(refreshToken string) (*domain.LoginResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{userRepo: userRepo, jwtManager: jwtManager}
}

// Register creates a new account with a bcrypt-hashed password
func (s *authService) Register(req *domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, common.ErrUserAlreadyExists
	}
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, common.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        "user",
		DisplayName: req.DisplayName,
		Status:      "active",
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and issues a token pair
func (s *authService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if user.Status != "active" {
		return nil, common.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	// Best-effort; a failed lastLogin write should not block the login
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		logger.GetLogger().Warn().Err(err).Str("user_id", user.ID).Msg("last login update failed")
	}

	return s.tokenPair(user)
}

// Refresh validates a refresh token and rotates the token pair
func (s *authService) Refresh(refreshToken string) (*domain.LoginResponse, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, common.ErrForbidden
	}

	return s.tokenPair(user)
}

func (s *authService) tokenPair(user *domain.User) (*domain.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
