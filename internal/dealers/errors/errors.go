package errors

import "errors"

var (
	ErrNotFound = errors.New("dealer not found")
)
