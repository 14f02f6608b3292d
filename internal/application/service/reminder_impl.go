package service

import (
	"context"
	"errors"
	"fmt"
	"reminderd/internal/application/dto"
	"reminderd/internal/domain/constant"
	"reminderd/internal/domain/entity"
	"reminderd/internal/domain/repository"
	appErrors "reminderd/internal/pkg/errors"
	"reminderd/internal/pkg/logger"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	userRepo     repository.UserRepository
	now          func() time.Time
	log          logger.Logger
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	userRepo repository.UserRepository,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
		now:          time.Now,
		log:          log,
	}
}

// CreateReminder creates a reminder for an existing user.
func (s *reminderService) CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (*dto.ReminderResponse, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if req.TriggerAt.IsZero() {
		return nil, fmt.Errorf("%w: trigger_at is required", appErrors.ErrInvalidInput)
	}
	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	reminder := &entity.Reminder{
		UserID:      req.UserID,
		PlaceID:     req.PlaceID,
		Title:       title,
		Description: req.Description,
		TriggerAt:   req.TriggerAt,
	}
	id, err := s.reminderRepo.Create(ctx, reminder)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to create reminder for user %d", req.UserID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created reminder %d for user %d at %s", id, req.UserID, reminder.TriggerAt.Format(time.RFC3339)))
	return s.GetReminder(ctx, id)
}

// GetReminder retrieves a reminder by its ID.
func (s *reminderService) GetReminder(ctx context.Context, reminderID uint) (*dto.ReminderResponse, error) {
	reminder, err := s.findReminder(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToReminderResponse(reminder)
	return &resp, nil
}

// ListReminders lists a user's reminders.
func (s *reminderService) ListReminders(ctx context.Context, userID uint, completed *bool) ([]dto.ReminderResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	reminders, err := s.reminderRepo.FindByUserID(ctx, userID, completed)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders of user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToReminderResponseList(reminders), nil
}

// ListPendingReminders lists a user's triggered but not completed reminders.
func (s *reminderService) ListPendingReminders(ctx context.Context, userID uint) ([]dto.ReminderResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	reminders, err := s.reminderRepo.FindPendingByUserID(ctx, userID, s.now())
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list pending reminders of user %d", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToReminderResponseList(reminders), nil
}

// UpdateReminder applies the non-nil fields of req. The notified flag is left alone.
func (s *reminderService) UpdateReminder(ctx context.Context, reminderID uint, req dto.UpdateReminderRequest) (*dto.ReminderResponse, error) {
	reminder, err := s.findReminder(ctx, reminderID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		reminder.Title = title
	}
	if req.TriggerAt != nil {
		if req.TriggerAt.IsZero() {
			return nil, fmt.Errorf("%w: trigger_at is required", appErrors.ErrInvalidInput)
		}
		reminder.TriggerAt = *req.TriggerAt
	}
	if req.Description != nil {
		reminder.Description = req.Description
	}
	if req.PlaceID != nil {
		reminder.PlaceID = req.PlaceID
		reminder.Place = nil
	}
	if req.Completed != nil {
		reminder.Completed = *req.Completed
	}

	if err := s.saveReminder(ctx, reminder); err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Updated reminder %d", reminderID))
	return s.GetReminder(ctx, reminderID)
}

// CompleteReminder marks a reminder completed.
func (s *reminderService) CompleteReminder(ctx context.Context, reminderID uint) (*dto.ReminderResponse, error) {
	reminder, err := s.findReminder(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if !reminder.Completed {
		reminder.Completed = true
		if err := s.saveReminder(ctx, reminder); err != nil {
			return nil, err
		}
		s.log.Info(fmt.Sprintf("Completed reminder %d", reminderID))
	}
	resp := dto.ToReminderResponse(reminder)
	return &resp, nil
}

// DeleteReminder deletes a reminder.
func (s *reminderService) DeleteReminder(ctx context.Context, reminderID uint) error {
	if err := s.reminderRepo.Delete(ctx, reminderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrReminderNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to delete reminder %d", reminderID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted reminder %d", reminderID))
	return nil
}

func (s *reminderService) findReminder(ctx context.Context, reminderID uint) (*entity.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrReminderNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find reminder %d", reminderID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return reminder, nil
}

func (s *reminderService) saveReminder(ctx context.Context, reminder *entity.Reminder) error {
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrReminderNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to update reminder %d", reminder.ID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (s *reminderService) ensureUser(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrUserNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find user %d", userID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", appErrors.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > constant.MaxTitleLength {
		return "", fmt.Errorf("%w: title exceeds %d characters", appErrors.ErrInvalidInput, constant.MaxTitleLength)
	}
	return title, nil
}
