package domain

import (
	"context"
	"time"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	// Login answers ErrInvalidCredentials for unknown, inactive and
	// wrong-password accounts alike.
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	ValidateToken(ctx context.Context, rawToken string) (Principal, error)

	List(ctx context.Context, req ListUserRequest) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	// Delete marks the user inactive. The row is kept.
	Delete(ctx context.Context, id string) error
}

type RegisterRequest struct {
	Nombre   string
	Email    string
	Password string
	Rol      string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

type ListUserRequest struct {
	Q      string
	Estado string
	Rol    string
}

type ListUserFilter struct {
	Q      string
	Estado string
	Rol    string
}

// UpdateUserRequest rehashes the password only when Password is non-empty.
type UpdateUserRequest struct {
	ID       string
	Nombre   string
	Email    string
	Password string
	Rol      string
	Estado   string
}
