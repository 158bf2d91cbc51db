package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gradebook/internal/common"
	"gradebook/internal/dbx"
	"gradebook/internal/models"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *models.Student) (*models.Student, error) {
	query := `INSERT INTO students (username, password_hash, roll_no, name, batch)
	          VALUES (?, ?, ?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		s.Username, s.PasswordHash, s.RollNo, s.Name, s.Batch).Scan(&s.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.Student, error) {
	query := `SELECT id, username, password_hash, roll_no, name, batch FROM students
	          WHERE username = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT id, username, password_hash, roll_no, name, batch FROM students
	          WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := `SELECT id, username, password_hash, roll_no, name, batch FROM students
	          ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Username, &s.PasswordHash, &s.RollNo, &s.Name, &s.Batch); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) UpdatePasswordHash(ctx context.Context, username string, hash []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE students SET password_hash = ? WHERE username = ?`, hash, username)
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

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.ID, &s.Username, &s.PasswordHash, &s.RollNo, &s.Name, &s.Batch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
