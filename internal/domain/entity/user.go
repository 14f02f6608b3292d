package entity

import (
	"strings"
	"time"
)

// User is the owner of reminders. Only the fields the scheduler needs are mapped.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	PushToken *string   `gorm:"column:push_token"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Token returns the registered push token and whether one is present.
func (u *User) Token() (string, bool) {
	if u == nil || u.PushToken == nil {
		return "", false
	}
	t := strings.TrimSpace(*u.PushToken)
	return t, t != ""
}
