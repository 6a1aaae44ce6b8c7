package database

import "errors"

// Store errors are sentinels so handlers can map them to status codes
// with errors.Is. NotFound and Forbidden are never conflated: existence
// is resolved first, authorization second.
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("record already exists")
)
