package domain

import "errors"

var (
	// ErrInvalidType indicates the notification severity is outside the closed set.
	ErrInvalidType = errors.New("invalid notification type")
	// ErrInvalidMessage indicates an empty notification message.
	ErrInvalidMessage = errors.New("invalid notification message")
	// ErrNotificationNotFound indicates no notification matches the identifier.
	ErrNotificationNotFound = errors.New("notification not found")
)
