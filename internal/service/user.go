package service

import (
	"context"
	"errors"
	"fmt"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotAdmin       = errors.New("only admins can manage users")
	ErrSelfRoleChange = errors.New("admins cannot change their own role")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRole    = errors.New("role must be user or admin")
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) CreateUser(ctx context.Context, actorID int32, username, password string, role domain.Role) (*domain.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidRole, role)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, actorID, userID int32, role domain.Role) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == userID {
		return ErrSelfRoleChange
	}
	if !role.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidRole, role)
	}
	err := s.userRepo.UpdateRole(ctx, userID, role)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *userService) requireAdmin(ctx context.Context, actorID int32) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}
