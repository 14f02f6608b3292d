package service

import (
	"context"
	"reminderd/internal/application/dto"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	// CreateUser registers a user, optionally with a push token.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	// GetUser finds a user by ID.
	GetUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
	// RegisterPushToken sets the user's push token. An empty token clears it.
	RegisterPushToken(ctx context.Context, userID uint, req dto.RegisterPushTokenRequest) error
}
