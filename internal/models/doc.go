// Package models defines the core domain models for spendtrack.
//
// Three entities make up the data model:
//   - User: a person whose spending is tracked
//   - Category: a named bucket of spending (names are globally unique)
//   - Record: a single expense, owned by exactly one User and one Category
//
// Records reference their parents by numeric ID rather than by pointer to
// avoid circular references. A Record never outlives its User or Category:
// deleting either parent deletes the dependent Records.
package models
