// Package domain contains types for staff account administration.
package domain

import (
	"context"
	"time"

	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
)

// UpdateRoleRequest reassigns an account's role.
type UpdateRoleRequest struct {
	UserID string `json:"-"`
	Role   string `json:"role"`
}

// Response is the account representation returned to callers. Password hashes
// never leave the auth layer.
type Response struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Role        authdomain.Role `json:"role"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Service administers staff accounts.
type Service interface {
	List(ctx context.Context) ([]Response, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (*Response, error)
}
