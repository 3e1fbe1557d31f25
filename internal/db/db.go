// Package db provides the user directory backing login and the admin user
// list: a PostgreSQL table or a JSON users file.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-editor/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const createUsersTable = `CREATE TABLE IF NOT EXISTS users (
	email         TEXT PRIMARY KEY,
	role          TEXT NOT NULL CHECK (role IN ('admin', 'user')),
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the users table when it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email, case-insensitively.
// Returns nil, nil when no user matches.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT email, role, password_hash, created_at FROM users WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email),
	).Scan(&u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ListUsers returns every user ordered by email.
func (db *DB) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT email, role, password_hash, created_at FROM users ORDER BY email`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a user, or updates role and hash when the email exists.
func (db *DB) CreateUser(ctx context.Context, email string, role types.Role, passwordHash string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (email, role, password_hash) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET role = $2, password_hash = $3`,
		strings.TrimSpace(email), string(role), passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// DeleteUser removes a user by email.
func (db *DB) DeleteUser(ctx context.Context, email string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
