package constant

import "time"

// NotificationType tags the data payload of a push so the mobile client can deep-link.
type NotificationType string

const (
	// NotificationTypeReminder marks pushes produced by the due-reminder tick.
	NotificationTypeReminder NotificationType = "reminder"
	// NotificationTypeTest marks pushes produced by the manual trigger.
	NotificationTypeTest NotificationType = "test"
)

func (t NotificationType) String() string {
	return string(t)
}

const (
	// RetentionDays is how long completed reminders are kept after their trigger time.
	RetentionDays = 30
	// DefaultDueBatchSize caps the reminders handled by one due tick.
	DefaultDueBatchSize = 50
	// DefaultDispatchTimeout bounds a single push gateway call.
	DefaultDispatchTimeout = 10 * time.Second
	// MaxTitleLength is the longest reminder title accepted.
	MaxTitleLength = 120
)

// PurgeCutoff returns the instant before which completed reminders are purged.
func PurgeCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -RetentionDays)
}
