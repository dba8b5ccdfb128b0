package models

import "time"

// Record represents a single expense made by a user within a category.
type Record struct {
	// ID is the unique identifier for the record.
	ID int64 `json:"id"`

	// UserID references the owning User. The user must exist when the
	// record is created; deleting the user deletes the record.
	UserID int64 `json:"user_id"`

	// CategoryID references the owning Category, with the same lifecycle
	// coupling as UserID.
	CategoryID int64 `json:"category_id"`

	// CreatedAt is when the expense happened. Defaults to the current UTC
	// time when not supplied by the caller.
	CreatedAt time.Time `json:"created_at"`

	// Amount is the expense amount, fixed-point with two fractional digits.
	Amount Amount `json:"amount"`
}
