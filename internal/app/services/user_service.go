package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
)

// UserStore lists the operator directory. Authentication lives outside this
// service; only lookup is needed here.
type UserStore interface {
	UserReader
	GetAll(ctx context.Context) ([]*models.User, error)
}

// UserService exposes the operator directory.
type UserService interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	// GetManagers returns the users eligible to manage properties
	// (admins and account managers).
	GetManagers(ctx context.Context) ([]*models.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	users UserStore
}

// NewUserService creates a new user service instance.
func NewUserService(users UserStore) UserService {
	return &userServiceImpl{users: users}
}

// GetUserByID retrieves a user by ID.
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetAllUsers retrieves all users.
func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// GetManagers filters the directory down to manager-eligible users.
func (s *userServiceImpl) GetManagers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}

	managers := []*models.User{}
	for _, u := range users {
		if u.CanManageProperties() {
			managers = append(managers, u)
		}
	}
	return managers, nil
}
