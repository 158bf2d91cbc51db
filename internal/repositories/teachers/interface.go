// Package teachers provides persistence for teacher accounts.
package teachers

import (
	"context"

	"gradebook/internal/models"
)

type Repository interface {
	// Create inserts a new teacher. Duplicate usernames yield
	// common.ErrDuplicateIdentity.
	Create(ctx context.Context, t *models.Teacher) (*models.Teacher, error)
	GetByUsername(ctx context.Context, username string) (*models.Teacher, error)
	// UpdatePasswordHash overwrites the stored hash. Unknown usernames
	// yield common.ErrorNotFound.
	UpdatePasswordHash(ctx context.Context, username string, hash []byte) error
}
