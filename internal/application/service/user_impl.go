package service

import (
	"context"
	"errors"
	"fmt"
	"reminderd/internal/application/dto"
	"reminderd/internal/domain/entity"
	"reminderd/internal/domain/repository"
	appErrors "reminderd/internal/pkg/errors"
	"reminderd/internal/pkg/logger"
	"strings"

	"gorm.io/gorm"
)

type userService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
func NewUserService(userRepo repository.UserRepository, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

// CreateUser registers a user.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", appErrors.ErrInvalidInput)
	}
	user := &entity.User{Name: name, PushToken: normalizeToken(req.PushToken)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created user %d", user.ID))
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// GetUser finds a user by ID.
func (s *userService) GetUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// RegisterPushToken replaces the user's push token.
func (s *userService) RegisterPushToken(ctx context.Context, userID uint, req dto.RegisterPushTokenRequest) error {
	token := normalizeToken(&req.Token)
	if err := s.userRepo.UpdatePushToken(ctx, userID, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrUserNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to update push token of user %d", userID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if token == nil {
		s.log.Info(fmt.Sprintf("Cleared push token of user %d", userID))
	} else {
		s.log.Info(fmt.Sprintf("Registered push token for user %d", userID))
	}
	return nil
}

func normalizeToken(token *string) *string {
	if token == nil {
		return nil
	}
	t := strings.TrimSpace(*token)
	if t == "" {
		return nil
	}
	return &t
}
