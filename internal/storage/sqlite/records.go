package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/okovalenko/spendtrack/internal/models"
	"github.com/okovalenko/spendtrack/internal/storage"
)

// CreateRecord persists a new record. Both parents are verified inside the
// insert transaction, so a record can never be created against a user or
// category that a concurrent delete just removed.
func (s *SQLiteStore) CreateRecord(ctx context.Context, rec *models.Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", rec.UserID).Scan(&exists)
	if err == sql.ErrNoRows {
		return storage.NewReferenceError("User does not exist")
	}
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}

	err = tx.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ?", rec.CategoryID).Scan(&exists)
	if err == sql.ErrNoRows {
		return storage.NewReferenceError("Category does not exist")
	}
	if err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO records (user_id, category_id, created_at, amount) VALUES (?, ?, ?, ?)",
		rec.UserID, rec.CategoryID, rec.CreatedAt.UTC().Format(time.RFC3339Nano), rec.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read record id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	rec.ID = id
	return nil
}

// GetRecord retrieves a record by ID.
func (s *SQLiteStore) GetRecord(ctx context.Context, id int64) (*models.Record, error) {
	var (
		rec       models.Record
		createdAt string
		amount    string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, category_id, created_at, amount FROM records WHERE id = ?", id,
	).Scan(&rec.ID, &rec.UserID, &rec.CategoryID, &createdAt, &amount)
	if err == sql.ErrNoRows {
		return nil, storage.NewNotFoundError("Record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	if err := hydrateRecord(&rec, createdAt, amount); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecords returns records matching the filter, ordered by ID ascending.
// Filter validation (at least one of user/category) is the service's job;
// the store accepts an empty filter and returns everything.
func (s *SQLiteStore) ListRecords(ctx context.Context, filter storage.RecordFilter) ([]*models.Record, error) {
	query := "SELECT id, user_id, category_id, created_at, amount FROM records"
	var (
		conds []string
		args  []interface{}
	)
	if filter.UserID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.CategoryID != nil {
		conds = append(conds, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.Record, 0)
	for rows.Next() {
		var (
			rec       models.Record
			createdAt string
			amount    string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CategoryID, &createdAt, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := hydrateRecord(&rec, createdAt, amount); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// DeleteRecord removes a record by ID.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return storage.NewNotFoundError("Record not found")
	}

	return nil
}

// hydrateRecord fills the parsed created_at and amount columns into rec.
func hydrateRecord(rec *models.Record, createdAt, amount string) error {
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return fmt.Errorf("failed to parse record created_at: %w", err)
	}
	rec.CreatedAt = t

	a, err := models.ParseAmountString(amount)
	if err != nil {
		return fmt.Errorf("failed to parse record amount: %w", err)
	}
	rec.Amount = a

	return nil
}
