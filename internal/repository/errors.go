package repository

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrInvalidStatus     = errors.New("unknown funnel status")
)
