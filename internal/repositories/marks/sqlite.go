package marks

import (
	"context"
	"database/sql"
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

func (r *SQLiteRepository) Create(ctx context.Context, m *models.Mark) (*models.Mark, error) {
	query := `INSERT INTO marks (student_id, subject_id, semester, marks, grade, grade_point)
	          VALUES (?, ?, ?, ?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		m.StudentID, m.SubjectID, m.Semester, m.Score, m.Grade, m.GradePoint).Scan(&m.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateResult
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, m *models.Mark) error {
	query := `UPDATE marks SET marks = ?, grade = ?, grade_point = ?
	          WHERE student_id = ? AND subject_id = ? AND semester = ?`

	res, err := r.db.ExecContext(ctx, query,
		m.Score, m.Grade, m.GradePoint, m.StudentID, m.SubjectID, m.Semester)
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

func (r *SQLiteRepository) Delete(ctx context.Context, studentID, subjectID int64, semester int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM marks WHERE student_id = ? AND subject_id = ? AND semester = ?`,
		studentID, subjectID, semester)
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

func (r *SQLiteRepository) SemesterResults(ctx context.Context, studentID int64, semester int) ([]models.ResultRow, error) {
	query := `SELECT subj.code, subj.name, subj.credits, m.semester, m.marks, m.grade
	          FROM marks m
	          JOIN subjects subj ON m.subject_id = subj.id
	          WHERE m.student_id = ? AND m.semester = ?
	          ORDER BY subj.code`

	rows, err := r.db.QueryContext(ctx, query, studentID, semester)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.ResultRow
	for rows.Next() {
		var row models.ResultRow
		var grade sql.NullString
		if err := rows.Scan(&row.SubjectCode, &row.SubjectName, &row.Credits,
			&row.Semester, &row.Score, &grade); err != nil {
			return nil, err
		}
		row.Grade = grade.String
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) ResultsForTeacher(ctx context.Context, teacherID int64) ([]models.TeacherResultRow, error) {
	query := `SELECT s.username, s.roll_no, s.name, subj.code, subj.name, m.semester, m.marks, m.grade
	          FROM marks m
	          JOIN students s ON m.student_id = s.id
	          JOIN subjects subj ON m.subject_id = subj.id
	          WHERE subj.teacher_id = ?
	          ORDER BY s.username, m.semester`

	rows, err := r.db.QueryContext(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.TeacherResultRow
	for rows.Next() {
		var row models.TeacherResultRow
		var grade sql.NullString
		if err := rows.Scan(&row.StudentUsername, &row.RollNo, &row.StudentName,
			&row.SubjectCode, &row.SubjectName, &row.Semester, &row.Score, &grade); err != nil {
			return nil, err
		}
		row.Grade = grade.String
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) GradedCredits(ctx context.Context, studentID int64, semester int) ([]models.GradedCredit, error) {
	query := `SELECT m.grade_point, s.credits
	          FROM marks m
	          JOIN subjects s ON m.subject_id = s.id
	          WHERE m.student_id = ?`
	args := []any{studentID}
	if semester > 0 {
		query += ` AND m.semester = ?`
		args = append(args, semester)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.GradedCredit
	for rows.Next() {
		var gp sql.NullFloat64
		var gc models.GradedCredit
		if err := rows.Scan(&gp, &gc.Credits); err != nil {
			return nil, err
		}
		gc.GradePoint = gp.Float64
		gc.Graded = gp.Valid
		result = append(result, gc)
	}
	return result, rows.Err()
}
