package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalid        = errors.New("invalid")
	ErrPrecondition   = errors.New("precondition failed")
	ErrIncomplete     = errors.New("order configuration incomplete")
	ErrLocationDenied = errors.New("location access denied")
	ErrProvider       = errors.New("provider unavailable")
)
