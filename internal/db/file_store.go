package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// FileStore is a read-only user directory loaded from a JSON array of
// {email, role, password_hash} records.
type FileStore struct {
	users []User
	index map[string]int
}

// LoadFileStore reads and validates a users file.
func LoadFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file %s: %w", path, err)
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}
	return NewFileStore(users)
}

// NewFileStore builds a directory from users. Emails must be unique,
// ignoring case, and roles must be admin or user.
func NewFileStore(users []User) (*FileStore, error) {
	s := &FileStore{index: make(map[string]int, len(users))}
	for _, u := range users {
		u.Email = strings.TrimSpace(u.Email)
		if u.Email == "" {
			return nil, fmt.Errorf("user with empty email")
		}
		if u.Role != types.RoleAdmin && u.Role != types.RoleUser {
			return nil, fmt.Errorf("user %s: invalid role %q", u.Email, u.Role)
		}
		if u.PasswordHash == "" {
			return nil, fmt.Errorf("user %s: password_hash is empty", u.Email)
		}
		key := strings.ToLower(u.Email)
		if _, dup := s.index[key]; dup {
			return nil, fmt.Errorf("duplicate user %s", u.Email)
		}
		s.users = append(s.users, u)
	}
	sort.SliceStable(s.users, func(i, j int) bool {
		return strings.ToLower(s.users[i].Email) < strings.ToLower(s.users[j].Email)
	})
	for i, u := range s.users {
		s.index[strings.ToLower(u.Email)] = i
	}
	return s, nil
}

// GetUserByEmail implements UserStore.
func (s *FileStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := s.index[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	u := s.users[i]
	return &u, nil
}

// ListUsers implements UserStore.
func (s *FileStore) ListUsers(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// UpsertUserFile adds u to the users file at path, replacing any user with
// the same email. The file is created when missing.
func UpsertUserFile(path string, u User) error {
	var users []User
	if _, err := os.Stat(path); err == nil {
		s, err := LoadFileStore(path)
		if err != nil {
			return err
		}
		users = s.users
	}

	replaced := false
	for i := range users {
		if strings.EqualFold(users[i].Email, strings.TrimSpace(u.Email)) {
			users[i] = u
			replaced = true
		}
	}
	if !replaced {
		users = append(users, u)
	}

	s, err := NewFileStore(users)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create users directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write users file %s: %w", path, err)
	}
	return nil
}
