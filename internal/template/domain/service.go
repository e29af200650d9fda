package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Service manages receipt templates.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	GetByName(ctx context.Context, name string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

// Repository persists templates.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, t *Template) error
	List(ctx context.Context, db *gorm.DB) ([]Template, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Template, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Template, error)
	Update(ctx context.Context, db *gorm.DB, t *Template) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

// CreateRequest creates a template. Blank branding colors fall back to the
// default palette.
type CreateRequest struct {
	Name         string      `json:"name"`
	Organization string      `json:"organization"`
	Address      string      `json:"address"`
	Purpose      string      `json:"purpose"`
	Signatories  []Signatory `json:"signatories"`
	Branding     Branding    `json:"branding"`
}

// UpdateRequest replaces a template's fields. The identifier never changes.
type UpdateRequest struct {
	ID           string      `json:"-"`
	Name         string      `json:"name"`
	Organization string      `json:"organization"`
	Address      string      `json:"address"`
	Purpose      string      `json:"purpose"`
	Signatories  []Signatory `json:"signatories"`
	Branding     Branding    `json:"branding"`
	Active       *bool       `json:"active"`
}

// Response is the template representation returned to callers.
type Response struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Organization string      `json:"organization"`
	Address      string      `json:"address"`
	Purpose      string      `json:"purpose"`
	Signatories  []Signatory `json:"signatories"`
	Branding     Branding    `json:"branding"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ToResponse converts a stored template to its API representation.
func ToResponse(t *Template) *Response {
	if t == nil {
		return nil
	}
	signatories := t.Signatories
	if signatories == nil {
		signatories = []Signatory{}
	}
	return &Response{
		ID:           t.ID.String(),
		Name:         t.Name,
		Organization: t.Organization,
		Address:      t.Address,
		Purpose:      t.Purpose,
		Signatories:  signatories,
		Branding:     t.Branding,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
