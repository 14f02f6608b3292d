package dto

import (
	"reminderd/internal/domain/entity"
	"time"
)

// ReminderResponse is the DTO for sending reminder information to the client.
type ReminderResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	PlaceID     *uint     `json:"place_id,omitempty"`
	PlaceName   string    `json:"place_name,omitempty"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	TriggerAt   time.Time `json:"trigger_at"`
	Completed   bool      `json:"completed"`
	Notified    bool      `json:"notified"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToReminderResponse converts an entity.Reminder to a ReminderResponse DTO.
func ToReminderResponse(r *entity.Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		PlaceID:     r.PlaceID,
		Title:       r.Title,
		Description: r.Description,
		TriggerAt:   r.TriggerAt,
		Completed:   r.Completed,
		Notified:    r.Notified,
		CreatedAt:   r.CreatedAt,
	}
	if r.Place != nil {
		resp.PlaceName = r.Place.Name
	}
	return resp
}

// ToReminderResponseList converts a slice of entity.Reminder to a slice of ReminderResponse DTOs.
func ToReminderResponseList(reminders []*entity.Reminder) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r)
	}
	return list
}

// CreateReminderRequest is the DTO for creating a new reminder.
type CreateReminderRequest struct {
	UserID      uint      `json:"user_id"`
	PlaceID     *uint     `json:"place_id,omitempty"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	TriggerAt   time.Time `json:"trigger_at"`
}

// UpdateReminderRequest is the DTO for a partial reminder update. Nil fields are left unchanged.
type UpdateReminderRequest struct {
	PlaceID     *uint      `json:"place_id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	TriggerAt   *time.Time `json:"trigger_at,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}
