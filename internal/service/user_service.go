package service

import (
	"context"
	"errors"
	"strings"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*model.User, bool, error)
	DeleteUser(ctx context.Context, userID string) error
	Me(ctx context.Context, userID string) (*model.User, error)
}

// CreateUserRequest is the user.created payload reduced to what is stored
type CreateUserRequest struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, log: log}
}

// CreateUser provisions a user from the identity provider. Repeated
// deliveries for the same id are answered with the stored row and false.
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*model.User, bool, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req, "Missing user data (id, email, first_name)"); err != nil {
		return nil, false, err
	}

	existing, err := s.userRepo.FindByID(ctx, req.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	taken, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		s.log.Warn("email held by another user", zap.String("user_id", req.ID), zap.String("holder_id", taken.ID))
		return nil, false, &ConflictError{Resource: "User", Field: "email", Value: req.Email}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user := &model.User{ID: req.ID, Email: req.Email, Name: req.Name}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	s.log.Info("user provisioned", zap.String("user_id", user.ID))
	return user, true, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &ValidationError{Message: "Missing user id"}
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "User", ID: userID}
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info("user removed", zap.String("user_id", userID))
	return nil
}

func (s *userService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
