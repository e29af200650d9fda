// Package domain contains the account and session types behind authentication.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is the closed set of access levels an account can hold.
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleEncoder Role = "encoder"
	RoleAdmin   Role = "admin"
)

// Roles lists every role in ascending order of capability.
func Roles() []Role {
	return []Role{RoleViewer, RoleEncoder, RoleAdmin}
}

// ParseRole normalizes and validates a role name.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEncoder, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// User is a staff account that can sign in.
type User struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username     string       `json:"username" gorm:"type:text;not null;uniqueIndex"`
	DisplayName  string       `json:"display_name" gorm:"type:text;not null"`
	PasswordHash string       `json:"-" gorm:"type:text;not null"`
	Role         Role         `json:"role" gorm:"type:text;not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session is a server-side login session. Only the token hash is stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	UserID           snowflake.ID `gorm:"not null;index"`
	SessionTokenHash string       `gorm:"type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"type:text"`
	IPAddress        string       `gorm:"type:text"`
	ExpiresAt        time.Time    `gorm:"not null"`
	CreatedAt        time.Time    `gorm:"not null"`
	LastSeenAt       time.Time    `gorm:"not null"`
	RevokedAt        *time.Time
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
