// Package students provides persistence for student accounts.
package students

import (
	"context"

	"gradebook/internal/models"
)

type Repository interface {
	// Create inserts a new student. Duplicate username or roll number
	// yields common.ErrDuplicateIdentity.
	Create(ctx context.Context, s *models.Student) (*models.Student, error)
	GetByUsername(ctx context.Context, username string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	// UpdatePasswordHash overwrites the stored hash. Unknown usernames
	// yield common.ErrorNotFound.
	UpdatePasswordHash(ctx context.Context, username string, hash []byte) error
}
