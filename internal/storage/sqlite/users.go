package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okovalenko/spendtrack/internal/models"
	"github.com/okovalenko/spendtrack/internal/storage"
)

// CreateUser inserts a new user and returns it with the assigned ID.
func (s *SQLiteStore) CreateUser(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, storage.NewValidationError("Field 'name' is required")
	}

	res, err := s.db.ExecContext(ctx, "INSERT INTO users (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}

	return &models.User{ID: id, Name: name}, nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM users WHERE id = ?", id,
	).Scan(&user.ID, &user.Name)
	if err == sql.ErrNoRows {
		return nil, storage.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ListUsers returns all users ordered by ID ascending.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM users ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// DeleteUser removes a user and all records owned by it in one transaction,
// so no reader observes the user gone while its records remain (or vice versa).
func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return storage.NewNotFoundError("User not found")
	}
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}

	// Explicit cascade; the schema-level ON DELETE CASCADE is a backstop.
	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
