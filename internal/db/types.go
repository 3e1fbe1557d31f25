package db

import (
	"context"
	"time"

	"github.com/jonathan/resume-editor/internal/types"
)

// User is a directory record. The hash never leaves the server.
type User struct {
	Email        string     `json:"email"`
	Role         types.Role `json:"role"`
	PasswordHash string     `json:"password_hash"`
	CreatedAt    time.Time  `json:"created_at,omitzero"`
}

// Public strips credentials from u.
func (u User) Public() types.User {
	return types.User{Email: u.Email, Role: u.Role}
}

// UserStore is the directory consulted for login and the admin list.
// GetUserByEmail returns nil, nil when no user matches.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

var (
	_ UserStore = (*DB)(nil)
	_ UserStore = (*FileStore)(nil)
)
