// Package subjects provides persistence for subjects.
package subjects

import (
	"context"

	"gradebook/internal/models"
)

type Repository interface {
	// Create inserts a new subject. Duplicate codes yield
	// common.ErrDuplicateSubject.
	Create(ctx context.Context, s *models.Subject) (*models.Subject, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetByTeacher(ctx context.Context, teacherID int64) ([]models.Subject, error)
}
