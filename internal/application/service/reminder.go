package service

import (
	"context"
	"reminderd/internal/application/dto"
)

// ReminderService defines the interface for reminder-related business logic.
type ReminderService interface {
	// CreateReminder creates a reminder and returns it.
	CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (*dto.ReminderResponse, error)
	// GetReminder retrieves a reminder by its ID.
	GetReminder(ctx context.Context, reminderID uint) (*dto.ReminderResponse, error)
	// ListReminders lists a user's reminders, optionally filtered by completion.
	ListReminders(ctx context.Context, userID uint, completed *bool) ([]dto.ReminderResponse, error)
	// ListPendingReminders lists a user's reminders that are not completed and already triggered.
	ListPendingReminders(ctx context.Context, userID uint) ([]dto.ReminderResponse, error)
	// UpdateReminder applies a partial update and returns the result.
	UpdateReminder(ctx context.Context, reminderID uint, req dto.UpdateReminderRequest) (*dto.ReminderResponse, error)
	// CompleteReminder marks a reminder completed.
	CompleteReminder(ctx context.Context, reminderID uint) (*dto.ReminderResponse, error)
	// DeleteReminder deletes a reminder.
	DeleteReminder(ctx context.Context, reminderID uint) error
}
