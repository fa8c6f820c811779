package service_test

import (
	"context"
	"testing"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/security"
	"bikeshop-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubTokenManager struct{}

func (stubTokenManager) GenerateAccessToken(userID int32, username, role string) (string, error) {
	return "stub-token", nil
}

func (stubTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	return nil, security.ErrInvalidToken
}

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := service.NewAuthService(userRepo, stubTokenManager{})
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "alice").Return(nil, repository.ErrNotFound).Once()
	userRepo.On("Count", ctx).Return(int64(0), nil).Once()
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "alice" && u.Role == domain.RoleAdmin && u.PasswordHash != "secret"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1
	}).Return(nil).Once()

	user, token, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "stub-token", token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
	userRepo.AssertExpectations(t)
}

func TestRegister_LaterUsersAreRegular(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := service.NewAuthService(userRepo, stubTokenManager{})
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "bob").Return(nil, repository.ErrNotFound).Once()
	userRepo.On("Count", ctx).Return(int64(3), nil).Once()
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleUser
	})).Return(nil).Once()

	user, _, err := svc.Register(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	userRepo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := service.NewAuthService(userRepo, stubTokenManager{})
	ctx := context.Background()

	userRepo.On("GetByUsername", ctx, "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil).Once()

	_, _, err := svc.Register(ctx, "alice", "secret")
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash), Role: domain.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, stubTokenManager{})
		userRepo.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()

		user, token, err := svc.Login(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
		assert.Equal(t, "stub-token", token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, stubTokenManager{})
		userRepo.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, stubTokenManager{})
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost", "secret")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
