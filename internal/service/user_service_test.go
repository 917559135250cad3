package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
)

func TestGetProfile_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	repo.On("FindByID", "missing").Return(nil, common.ErrUserNotFound)

	_, err := svc.GetProfile("missing")
	assert.True(t, errors.Is(err, common.ErrUserNotFound))
}

func TestUpdateProfile_PartialMerge(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	repo.On("FindByID", "user-1").Return(&domain.User{
		ID:          "user-1",
		DisplayName: "Alice",
		Bio:         "writes about Go",
	}, nil)
	repo.On("Update", mock.AnythingOfType("*domain.User")).Return(nil)

	bio := "writes about distributed systems"
	user, err := svc.UpdateProfile("user-1", &domain.UpdateProfileRequest{Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, bio, user.Bio)
	// Absent fields keep their value
	assert.Equal(t, "Alice", user.DisplayName)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_NestedFields(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	repo.On("FindByID", "user-1").Return(&domain.User{ID: "user-1"}, nil)
	repo.On("Update", mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.UpdateProfile("user-1", &domain.UpdateProfileRequest{
		Address:     &domain.Address{City: "Lisbon", Country: "PT"},
		SocialLinks: &domain.SocialLinks{Github: "https://github.com/alice"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Lisbon", user.Address.City)
	assert.Equal(t, "https://github.com/alice", user.SocialLinks.Github)
}
