package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emailform/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

type postgresEmailStore struct {
	db *sql.DB
}

// NewPostgresEmailStore inserts into the emails table created by
// database.Manager. The table's UNIQUE constraint rejects duplicates.
func NewPostgresEmailStore(db *sql.DB) EmailStore {
	return &postgresEmailStore{db: db}
}

func (r *postgresEmailStore) Append(ctx context.Context, email domain.EmailAddress) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO emails (email) VALUES ($1)",
		email.String(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to store email: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
