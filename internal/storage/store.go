// Package storage provides abstractions for persistent entity storage.
package storage

import (
	"context"

	"github.com/okovalenko/spendtrack/internal/models"
)

// RecordFilter narrows a record listing. Nil fields are ignored; set fields
// are combined with AND.
type RecordFilter struct {
	UserID     *int64
	CategoryID *int64
}

// Store defines the interface for entity storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// The store owns ID assignment and the referential-integrity invariants:
// a record can only be created against existing parents, and deleting a
// user or category removes its dependent records in the same atomic step.
type Store interface {
	// CreateUser persists a new user and returns it with the assigned ID.
	// Returns a ValidationError if name is empty.
	CreateUser(ctx context.Context, name string) (*models.User, error)

	// GetUser retrieves a user by ID. Returns a NotFoundError if absent.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// ListUsers returns all users ordered by ID ascending.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// DeleteUser removes a user and all records owned by it.
	// Returns a NotFoundError if the user does not exist.
	DeleteUser(ctx context.Context, id int64) error

	// CreateCategory persists a new category and returns it with the
	// assigned ID. Returns a ValidationError if name is empty and a
	// ConflictError if the name is already taken.
	CreateCategory(ctx context.Context, name string) (*models.Category, error)

	// GetCategory retrieves a category by ID. Returns a NotFoundError if absent.
	GetCategory(ctx context.Context, id int64) (*models.Category, error)

	// ListCategories returns all categories ordered by ID ascending.
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// DeleteCategory removes a category and all records within it.
	// Returns a NotFoundError if the category does not exist.
	DeleteCategory(ctx context.Context, id int64) error

	// CreateRecord persists a new record. The rec.ID field is populated by
	// the store; a zero rec.CreatedAt defaults to the current UTC time.
	// Returns a ReferenceError if either parent does not exist.
	CreateRecord(ctx context.Context, rec *models.Record) error

	// GetRecord retrieves a record by ID. Returns a NotFoundError if absent.
	GetRecord(ctx context.Context, id int64) (*models.Record, error)

	// ListRecords returns records matching the filter, ordered by ID ascending.
	ListRecords(ctx context.Context, filter RecordFilter) ([]*models.Record, error)

	// DeleteRecord removes a record by ID. Returns a NotFoundError if absent.
	DeleteRecord(ctx context.Context, id int64) error

	// Close releases any resources held by the store.
	Close() error
}
