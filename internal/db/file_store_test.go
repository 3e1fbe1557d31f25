package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/types"
)

func testUsers() []User {
	return []User{
		{Email: "user@example.com", Role: types.RoleUser, PasswordHash: "$2a$10$user"},
		{Email: "Admin@Example.com", Role: types.RoleAdmin, PasswordHash: "$2a$10$admin"},
	}
}

func TestNewFileStore(t *testing.T) {
	tests := []struct {
		name    string
		users   []User
		wantErr string
	}{
		{name: "valid", users: testUsers()},
		{name: "empty directory", users: nil},
		{name: "empty email", users: []User{{Email: " ", Role: types.RoleUser, PasswordHash: "h"}}, wantErr: "empty email"},
		{name: "bad role", users: []User{{Email: "a@b.c", Role: "root", PasswordHash: "h"}}, wantErr: "invalid role"},
		{name: "missing hash", users: []User{{Email: "a@b.c", Role: types.RoleUser}}, wantErr: "password_hash is empty"},
		{
			name: "duplicate ignoring case",
			users: []User{
				{Email: "a@b.c", Role: types.RoleUser, PasswordHash: "h"},
				{Email: "A@B.C", Role: types.RoleAdmin, PasswordHash: "h"},
			},
			wantErr: "duplicate user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewFileStore(tt.users)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestFileStore_GetUserByEmail(t *testing.T) {
	s, err := NewFileStore(testUsers())
	require.NoError(t, err)
	ctx := context.Background()

	u, err := s.GetUserByEmail(ctx, "  admin@example.COM ")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Admin@Example.com", u.Email)
	assert.Equal(t, types.RoleAdmin, u.Role)

	missing, err := s.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFileStore_ListUsersSortedCopy(t *testing.T) {
	s, err := NewFileStore(testUsers())
	require.NoError(t, err)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Admin@Example.com", users[0].Email)
	assert.Equal(t, "user@example.com", users[1].Email)

	users[0].Email = "changed"
	again, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Admin@Example.com", again[0].Email)
}

func TestFileStore_CancelledContext(t *testing.T) {
	s, err := NewFileStore(testUsers())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.ListUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.GetUserByEmail(ctx, "user@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	content := `[
		{"email": "admin@example.com", "role": "admin", "password_hash": "$2a$10$abc"},
		{"email": "user@example.com", "role": "user", "password_hash": "$2a$10$def"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := LoadFileStore(path)
	require.NoError(t, err)
	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "$2a$10$abc", users[0].PasswordHash)
}

func TestLoadFileStore_Errors(t *testing.T) {
	_, err := LoadFileStore(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read users file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"email": "x"}`), 0600))
	_, err = LoadFileStore(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse users file")
}

func TestUser_Public(t *testing.T) {
	u := User{Email: "a@b.c", Role: types.RoleAdmin, PasswordHash: "secret"}
	assert.Equal(t, types.User{Email: "a@b.c", Role: types.RoleAdmin}, u.Public())
}

func TestUpsertUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	require.NoError(t, UpsertUserFile(path, User{Email: "b@example.com", Role: types.RoleUser, PasswordHash: "h1"}))
	require.NoError(t, UpsertUserFile(path, User{Email: "a@example.com", Role: types.RoleAdmin, PasswordHash: "h2"}))
	require.NoError(t, UpsertUserFile(path, User{Email: "B@example.com", Role: types.RoleAdmin, PasswordHash: "h3"}))

	s, err := LoadFileStore(path)
	require.NoError(t, err)
	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "B@example.com", users[1].Email)
	assert.Equal(t, types.RoleAdmin, users[1].Role)
	assert.Equal(t, "h3", users[1].PasswordHash)
}
