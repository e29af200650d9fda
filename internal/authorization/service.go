// Package authorization enforces role-based access over every protected
// operation.
package authorization

import (
	"context"
	"errors"
)

var (
	// ErrForbidden indicates the role lacks the requested permission.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRole indicates an empty or unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidObject indicates an empty object name.
	ErrInvalidObject = errors.New("invalid object")
	// ErrInvalidAction indicates an empty action name.
	ErrInvalidAction = errors.New("invalid action")
)

// Service answers permission checks for a role.
type Service interface {
	Authorize(ctx context.Context, role string, object string, action string) error
}
