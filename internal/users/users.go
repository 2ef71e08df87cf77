// Package users manages user accounts for the cookie-session login flow.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	liftapperrors "github.com/mkoskela/liftapp/internal/errors"
	"github.com/mkoskela/liftapp/internal/sqlite"
)

// ErrNotFound marks a lookup that matched no user.
var ErrNotFound = liftapperrors.NewSentinel("user not found")

// User is an account row.
type User struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// Service reads and writes user accounts.
type Service struct {
	db *sqlite.Database
}

func NewService(db *sqlite.Database) *Service {
	return &Service{db: db}
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id int) (User, error) {
	var user User
	err := s.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, display_name, is_admin
		FROM users
		WHERE id = ?`, id).Scan(&user.ID, &user.DisplayName, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// GetByDisplayName retrieves a user by their unique display name.
func (s *Service) GetByDisplayName(ctx context.Context, displayName string) (User, error) {
	var user User
	err := s.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, display_name, is_admin
		FROM users
		WHERE display_name = ?`, displayName).Scan(&user.ID, &user.DisplayName, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %q: %w", displayName, ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// Register creates a user with the given display name, or returns the
// existing account when the name is already taken.
func (s *Service) Register(ctx context.Context, displayName string) (User, error) {
	existing, err := s.GetByDisplayName(ctx, displayName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	result, err := s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (display_name) VALUES (?)`, displayName)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("last insert id: %w", err)
	}

	return User{ID: int(id), DisplayName: displayName, IsAdmin: false}, nil
}
