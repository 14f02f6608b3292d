package errors

import "errors"

// Custom application errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrReminderNotFound  = errors.New("reminder not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrPushTokenMissing  = errors.New("user has no push token registered")
	ErrInvalidPushToken  = errors.New("push token has an invalid format")
	ErrPushGateway       = errors.New("push gateway request failed")
	ErrScheduling        = errors.New("scheduling failed")
	ErrInternalServer    = errors.New("internal server error")
)
