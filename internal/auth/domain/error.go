package domain

import "errors"

var (
	// ErrInvalidCredentials indicates a bad username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession indicates a missing or unknown session token.
	ErrInvalidSession = errors.New("invalid session")
	// ErrSessionExpired indicates the session's lifetime has elapsed.
	ErrSessionExpired = errors.New("session expired")
	// ErrSessionRevoked indicates a logged-out session.
	ErrSessionRevoked = errors.New("session revoked")
	// ErrSessionNotFound indicates no session matches the token hash.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUserNotFound indicates no account matches the query.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole indicates a role outside the closed set.
	ErrInvalidRole = errors.New("invalid role")
)
