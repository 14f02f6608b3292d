package repository

import (
	"context"
	"reminderd/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// Create creates a new user.
	Create(ctx context.Context, user *entity.User) error
	// UpdatePushToken replaces the user's push token. nil clears it.
	UpdatePushToken(ctx context.Context, id uint, token *string) error
}
