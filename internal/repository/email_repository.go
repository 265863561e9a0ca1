package repository

import (
	"context"

	"emailform/internal/domain"
)

// EmailStore persists accepted email addresses. Backends that enforce
// uniqueness return domain.ErrDuplicateEntry for a value already stored.
type EmailStore interface {
	Append(ctx context.Context, email domain.EmailAddress) error
}
