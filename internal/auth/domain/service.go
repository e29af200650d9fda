package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// LoginRequest carries a credential pair plus request metadata.
type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

// LoginResult carries the raw session token exactly once. Only its hash is
// persisted.
type LoginResult struct {
	User      *User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

// Service authenticates accounts and manages their sessions.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*User, error)
}

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id snowflake.ID, role Role, updatedAt time.Time) error
}

// SessionRepository persists login sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	UpdateLastSeen(ctx context.Context, id snowflake.ID, at time.Time) error
	RevokeSession(ctx context.Context, id snowflake.ID, at time.Time) error
}
