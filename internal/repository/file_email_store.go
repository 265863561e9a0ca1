package repository

import (
	"context"
	"fmt"
	"os"
	"sync"

	"emailform/internal/domain"
)

type fileEmailStore struct {
	path string
	mu   sync.Mutex
}

// NewFileEmailStore appends one address per line to the file at path.
// Duplicates are written again.
func NewFileEmailStore(path string) EmailStore {
	return &fileEmailStore{path: path}
}

func (s *fileEmailStore) Append(ctx context.Context, email domain.EmailAddress) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}

	if _, err := f.WriteString(email.String() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to write email: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}

	return nil
}
