package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okovalenko/spendtrack/internal/models"
	"github.com/okovalenko/spendtrack/internal/storage"
)

// CreateCategory inserts a new category and returns it with the assigned ID.
// The name must be unique across all categories.
func (s *SQLiteStore) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, storage.NewValidationError("Field 'name' is required")
	}

	// Uniqueness check and insert share a transaction so a concurrent
	// create of the same name cannot slip between them.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE name = ?", name).Scan(&exists)
	if err == nil {
		return nil, storage.NewConflictError("Category already exists")
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read category id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Category{ID: id, Name: name}, nil
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM categories WHERE id = ?", id,
	).Scan(&category.ID, &category.Name)
	if err == sql.ErrNoRows {
		return nil, storage.NewNotFoundError("Category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// ListCategories returns all categories ordered by ID ascending.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// DeleteCategory removes a category and all records within it in one
// transaction.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return storage.NewNotFoundError("Category not found")
	}
	if err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete category records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
