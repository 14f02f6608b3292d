package entity

import (
	"time"

	"gorm.io/gorm"
)

// Reminder is a user-owned record pairing a due time with a notification payload.
type Reminder struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	UserID         uint      `gorm:"column:user_id;not null;index"`
	Owner          *User     `gorm:"foreignKey:UserID"`
	PlaceID        *uint     `gorm:"column:place_id"`
	Place          *Place    `gorm:"foreignKey:PlaceID"`
	Title          string    `gorm:"column:title;size:120;not null"`
	Description    *string   `gorm:"column:description;type:text"`
	TriggerAt      time.Time `gorm:"column:trigger_at;not null;index:idx_reminders_due,priority:3"`
	Completed      bool      `gorm:"column:completed;not null;default:false;index:idx_reminders_due,priority:1"`
	Notified       bool      `gorm:"column:notified;not null;default:false;index:idx_reminders_due,priority:2"`
	NotifyAttempts int       `gorm:"column:notify_attempts;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Reminder entity.
func (Reminder) TableName() string {
	return "reminders"
}

// BeforeSave stores trigger times in UTC so that SQLite's textual time
// comparison in the due and purge queries stays consistent.
func (r *Reminder) BeforeSave(tx *gorm.DB) error {
	r.TriggerAt = r.TriggerAt.UTC()
	return nil
}

// IsDue reports whether the reminder should be notified at now.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Completed && !r.Notified && !r.TriggerAt.After(now)
}

// DescriptionText returns the description or "" when unset.
func (r *Reminder) DescriptionText() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}
