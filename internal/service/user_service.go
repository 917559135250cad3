package service

import (
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/repository"
)

// UserService profile reads and updates
type UserService interface {
	GetProfile(userID string) (*domain.User, error)
	UpdateProfile(userID string, req *domain.UpdateProfileRequest) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetProfile(userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// UpdateProfile applies a partial update; absent fields keep their value
func (s *userService) UpdateProfile(userID string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.SocialLinks != nil {
		user.SocialLinks = req.SocialLinks
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
