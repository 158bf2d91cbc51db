package teachers

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

func (r *SQLiteRepository) Create(ctx context.Context, t *models.Teacher) (*models.Teacher, error) {
	query := `INSERT INTO teachers (username, password_hash, name, department)
	          VALUES (?, ?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		t.Username, t.PasswordHash, t.Name, t.Department).Scan(&t.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	query := `SELECT id, username, password_hash, name, department FROM teachers
	          WHERE username = ?`

	t := &models.Teacher{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&t.ID, &t.Username, &t.PasswordHash, &t.Name, &t.Department)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) UpdatePasswordHash(ctx context.Context, username string, hash []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE teachers SET password_hash = ? WHERE username = ?`, hash, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
