package models

// User represents a person whose expenses are tracked.
type User struct {
	// ID is the unique identifier for the user. IDs are assigned by the
	// store, increase monotonically, and are never reused.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`
}
