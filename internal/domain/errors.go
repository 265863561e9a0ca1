package domain

import "errors"

var (
	ErrInvalidFormat  = errors.New("invalid email address")
	ErrDuplicateEntry = errors.New("duplicate entry")
)
