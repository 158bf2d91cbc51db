package subjects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gradebook/internal/common"
	"gradebook/internal/dbx"
	"gradebook/internal/models"
)

// SQLiteRepository implements Repository over a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *models.Subject) (*models.Subject, error) {
	query := `INSERT INTO subjects (code, name, credits, teacher_id)
	          VALUES (?, ?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		s.Code, s.Name, s.Credits, s.TeacherID).Scan(&s.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateSubject
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `SELECT id, code, name, credits, teacher_id FROM subjects
	          WHERE id = ?`

	s := &models.Subject{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Code, &s.Name, &s.Credits, &s.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) GetByTeacher(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	query := `SELECT id, code, name, credits, teacher_id FROM subjects
	          WHERE teacher_id = ?
	          ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Credits, &s.TeacherID); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
