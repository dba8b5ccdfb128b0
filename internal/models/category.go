package models

// Category represents a named spending bucket (e.g. "Food", "Transport").
type Category struct {
	// ID is the unique identifier for the category. Same ID discipline
	// as User: store-assigned, monotonic, never reused.
	ID int64 `json:"id"`

	// Name is the display name of the category, unique across all categories.
	Name string `json:"name"`
}
