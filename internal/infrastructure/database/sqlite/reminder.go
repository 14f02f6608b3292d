package sqlite

import (
	"context"
	"errors"
	"fmt"
	"reminderd/internal/domain/entity"
	"reminderd/internal/domain/repository"
	"time"

	"gorm.io/gorm"
)

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// FindDue retrieves up to limit due reminders with their owner and place.
func (r *reminderRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Place").
		Where("completed = ? AND notified = ? AND trigger_at <= ?", false, false, now.UTC()).
		Order("trigger_at asc").
		Order("id asc").
		Limit(limit).
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due reminders: %w", err)
	}
	return reminders, nil
}

// MarkNotified sets notified=true only on a reminder that is still unnotified.
func (r *reminderRepository) MarkNotified(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Reminder{}).
		Where("id = ? AND notified = ?", id, false).
		Update("notified", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark reminder %d notified: %w", id, err)
	}
	return nil
}

// RecordFailedAttempt increments notify_attempts and returns the new value.
func (r *reminderRepository) RecordFailedAttempt(ctx context.Context, id uint) (int, error) {
	var attempts int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Reminder{}).
			Where("id = ? AND notified = ?", id, false).
			UpdateColumn("notify_attempts", gorm.Expr("notify_attempts + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&entity.Reminder{}).
			Where("id = ?", id).
			Pluck("notify_attempts", &attempts).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record dispatch attempt for reminder %d: %w", id, err)
	}
	return attempts, nil
}

// DeleteCompletedBefore deletes completed reminders whose trigger time is before cutoff.
func (r *reminderRepository) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("completed = ? AND trigger_at < ?", true, cutoff.UTC()).
		Delete(&entity.Reminder{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete completed reminders older than %v: %w", cutoff, res.Error)
	}
	return res.RowsAffected, nil
}

// FindByID retrieves a reminder by its ID.
func (r *reminderRepository) FindByID(ctx context.Context, id uint) (*entity.Reminder, error) {
	var reminder entity.Reminder
	if err := r.db.WithContext(ctx).Preload("Place").First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reminder with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find reminder by id %d: %w", id, err)
	}
	return &reminder, nil
}

// FindByUserID retrieves reminders of a user ordered by trigger time.
func (r *reminderRepository) FindByUserID(ctx context.Context, userID uint, completed *bool) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	q := r.db.WithContext(ctx).Preload("Place").Where("user_id = ?", userID)
	if completed != nil {
		q = q.Where("completed = ?", *completed)
	}
	if err := q.Order("trigger_at asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to find reminders by user_id %d: %w", userID, err)
	}
	return reminders, nil
}

// FindPendingByUserID retrieves not completed reminders whose trigger time has passed.
func (r *reminderRepository) FindPendingByUserID(ctx context.Context, userID uint, now time.Time) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	err := r.db.WithContext(ctx).
		Preload("Place").
		Where("user_id = ? AND completed = ? AND trigger_at <= ?", userID, false, now.UTC()).
		Order("trigger_at asc").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending reminders by user_id %d: %w", userID, err)
	}
	return reminders, nil
}

// Create creates a new reminder. Returns the ID of the created reminder.
func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) (uint, error) {
	if err := r.db.WithContext(ctx).Omit("Owner", "Place").Create(reminder).Error; err != nil {
		return 0, fmt.Errorf("failed to create reminder for user %d: %w", reminder.UserID, err)
	}
	return reminder.ID, nil
}

// Update persists the user-editable columns. notified and notify_attempts are
// owned by the scheduler and are never written here.
func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	res := r.db.WithContext(ctx).
		Model(reminder).
		Select("place_id", "title", "description", "trigger_at", "completed", "updated_at").
		Updates(reminder)
	if res.Error != nil {
		return fmt.Errorf("failed to update reminder %d: %w", reminder.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reminder with ID %d not found: %w", reminder.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete deletes a reminder by its ID.
func (r *reminderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Reminder{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete reminder %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reminder with ID %d not found: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
