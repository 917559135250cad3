package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ListByIDs(ids []string) ([]*domain.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(user *domain.User) error {
	return m.Called(user).Error(0)
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func activeUser(password string) *domain.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hashed),
		Role:     "user",
		Status:   "active",
	}
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	repo.On("FindByEmail", "bob@example.com").Return(nil, common.ErrUserNotFound)
	repo.On("FindByUsername", "bob").Return(nil, common.ErrUserNotFound)
	repo.On("Create", mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(&domain.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "correct horse battery",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, "active", user.Status)
	assert.NotEqual(t, "correct horse battery", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct horse battery")))
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	repo.On("FindByEmail", "alice@example.com").Return(activeUser("x"), nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "whatever secret",
	})

	assert.True(t, errors.Is(err, common.ErrUserAlreadyExists))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	repo.On("FindByEmail", "new@example.com").Return(nil, common.ErrUserNotFound)
	repo.On("FindByUsername", "alice").Return(activeUser("x"), nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Username: "alice",
		Email:    "new@example.com",
		Password: "whatever secret",
	})

	assert.True(t, errors.Is(err, common.ErrUserAlreadyExists))
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepo)
	mgr := testJWTManager()
	svc := NewAuthService(repo, mgr)

	repo.On("FindByEmail", "alice@example.com").Return(activeUser("secret pass"), nil)
	repo.On("Update", mock.AnythingOfType("*domain.User")).Return(nil)

	resp, err := svc.Login(&domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret pass",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := mgr.VerifyToken(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "access", claims.Type)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	repo.On("FindByEmail", "alice@example.com").Return(activeUser("secret pass"), nil)

	_, err := svc.Login(&domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "not the password",
	})

	assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	repo.On("FindByEmail", "ghost@example.com").Return(nil, common.ErrUserNotFound)

	_, err := svc.Login(&domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever secret",
	})

	assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
}

func TestLogin_SuspendedAccount(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	user := activeUser("secret pass")
	user.Status = "suspended"
	repo.On("FindByEmail", "alice@example.com").Return(user, nil)

	_, err := svc.Login(&domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret pass",
	})

	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestLogin_LastLoginWriteFailureIsNonFatal(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	repo.On("FindByEmail", "alice@example.com").Return(activeUser("secret pass"), nil)
	repo.On("Update", mock.Anything).Return(errors.New("db down"))

	resp, err := svc.Login(&domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret pass",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefresh_RotatesPair(t *testing.T) {
	repo := new(mockUserRepo)
	mgr := testJWTManager()
	svc := NewAuthService(repo, mgr)

	refreshToken, err := mgr.GenerateRefreshToken("user-1")
	assert.NoError(t, err)

	repo.On("FindByID", "user-1").Return(activeUser("x"), nil)

	resp, err := svc.Refresh(refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	repo := new(mockUserRepo)
	mgr := testJWTManager()
	svc := NewAuthService(repo, mgr)

	accessToken, err := mgr.GenerateAccessToken("user-1", "alice", "user")
	assert.NoError(t, err)

	_, err = svc.Refresh(accessToken)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestRefresh_GarbageToken(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testJWTManager())

	_, err := svc.Refresh("not.a.token")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}
