package repository

import (
	"context"
	"reminderd/internal/domain/entity"
	"time"
)

// ReminderRepository defines the interface for reminder data operations.
type ReminderRepository interface {
	// FindDue retrieves up to limit reminders that are due at now, oldest trigger first,
	// with Owner and Place loaded.
	FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.Reminder, error)
	// MarkNotified sets notified=true. A reminder that is already notified or no longer
	// exists is left alone without error.
	MarkNotified(ctx context.Context, id uint) error
	// RecordFailedAttempt increments the dispatch attempt counter of a not-yet-notified
	// reminder and returns the new count (0 if the reminder is gone or already notified).
	RecordFailedAttempt(ctx context.Context, id uint) (int, error)
	// DeleteCompletedBefore deletes completed reminders triggered before cutoff.
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// FindByID retrieves a reminder by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Reminder, error)
	// FindByUserID retrieves reminders of a user, optionally filtered by completion.
	FindByUserID(ctx context.Context, userID uint, completed *bool) ([]*entity.Reminder, error)
	// FindPendingByUserID retrieves not completed reminders whose trigger time has passed.
	FindPendingByUserID(ctx context.Context, userID uint, now time.Time) ([]*entity.Reminder, error)
	// Create creates a new reminder. Returns the ID of the created reminder.
	Create(ctx context.Context, reminder *entity.Reminder) (uint, error)
	// Update persists the user-editable fields of an existing reminder.
	Update(ctx context.Context, reminder *entity.Reminder) error
	// Delete deletes a reminder by its ID.
	Delete(ctx context.Context, id uint) error
}
