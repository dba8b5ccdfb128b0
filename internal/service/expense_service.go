// Package service implements the application logic between the HTTP layer
// and the storage layer: request-shape validation and operation logging.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/okovalenko/spendtrack/internal/models"
	"github.com/okovalenko/spendtrack/internal/storage"
)

// ExpenseService exposes user, category and record operations on top of a
// storage backend.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateUser creates a new user with the given name.
func (s *ExpenseService) CreateUser(ctx context.Context, name string) (*models.User, error) {
	user, err := s.store.CreateUser(ctx, name)
	if err != nil {
		return nil, err
	}
	slog.Info("User created", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *ExpenseService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// ListUsers returns all users ordered by ID.
func (s *ExpenseService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// DeleteUser deletes a user and cascades to its records.
func (s *ExpenseService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.Info("User deleted", "user_id", id)
	return nil
}

// CreateCategory creates a new category with the given (unique) name.
func (s *ExpenseService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	slog.Info("Category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// GetCategory retrieves a category by ID.
func (s *ExpenseService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// ListCategories returns all categories ordered by ID.
func (s *ExpenseService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.store.ListCategories(ctx)
}

// DeleteCategory deletes a category and cascades to its records.
func (s *ExpenseService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	slog.Info("Category deleted", "category_id", id)
	return nil
}

// CreateRecordInput carries the raw shape of a record-creation request.
// Pointer fields and the raw amount distinguish "absent" from zero values.
type CreateRecordInput struct {
	UserID     *int64
	CategoryID *int64
	Amount     json.RawMessage
	CreatedAt  *time.Time
}

// CreateRecord validates and creates a new expense record.
//
// Validation order is fixed: field presence, then parent references, then
// amount format. A request with a dangling user_id AND a malformed amount
// reports the dangling reference.
func (s *ExpenseService) CreateRecord(ctx context.Context, in CreateRecordInput) (*models.Record, error) {
	var missing []string
	if in.UserID == nil {
		missing = append(missing, "user_id")
	}
	if in.CategoryID == nil {
		missing = append(missing, "category_id")
	}
	if len(in.Amount) == 0 || string(in.Amount) == "null" {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, storage.NewValidationError("Missing fields: " + strings.Join(missing, ", "))
	}

	if _, err := s.store.GetUser(ctx, *in.UserID); err != nil {
		if storage.IsNotFoundError(err) {
			return nil, storage.NewReferenceError("User does not exist")
		}
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, *in.CategoryID); err != nil {
		if storage.IsNotFoundError(err) {
			return nil, storage.NewReferenceError("Category does not exist")
		}
		return nil, err
	}

	amount, err := models.ParseAmount(in.Amount)
	if err != nil {
		return nil, storage.NewValidationError("Field 'amount' must be a number")
	}

	rec := &models.Record{
		UserID:     *in.UserID,
		CategoryID: *in.CategoryID,
		Amount:     amount,
	}
	if in.CreatedAt != nil {
		rec.CreatedAt = *in.CreatedAt
	}

	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}

	slog.Info("Record created",
		"record_id", rec.ID,
		"user_id", rec.UserID,
		"category_id", rec.CategoryID,
		"amount", rec.Amount.String(),
	)
	return rec, nil
}

// GetRecord retrieves a record by ID.
func (s *ExpenseService) GetRecord(ctx context.Context, id int64) (*models.Record, error) {
	return s.store.GetRecord(ctx, id)
}

// ListRecords returns records filtered by user and/or category.
// At least one filter must be supplied.
func (s *ExpenseService) ListRecords(ctx context.Context, userID, categoryID *int64) ([]*models.Record, error) {
	if userID == nil && categoryID == nil {
		return nil, storage.NewValidationError("At least one of 'user_id' or 'category_id' must be provided")
	}
	return s.store.ListRecords(ctx, storage.RecordFilter{UserID: userID, CategoryID: categoryID})
}

// DeleteRecord deletes a record by ID.
func (s *ExpenseService) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return err
	}
	slog.Info("Record deleted", "record_id", id)
	return nil
}
