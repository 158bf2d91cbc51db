package marks

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"gradebook/internal/common"
	"gradebook/internal/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE students (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  password_hash BLOB NOT NULL,
  roll_no TEXT UNIQUE NOT NULL,
  name TEXT NOT NULL,
  batch TEXT NOT NULL
);
CREATE TABLE subjects (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  code TEXT UNIQUE NOT NULL,
  name TEXT NOT NULL,
  credits INTEGER NOT NULL,
  teacher_id INTEGER NOT NULL
);
CREATE TABLE marks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  student_id INTEGER NOT NULL,
  subject_id INTEGER NOT NULL,
  semester INTEGER NOT NULL,
  marks INTEGER NOT NULL,
  grade TEXT,
  grade_point REAL,
  UNIQUE (student_id, subject_id, semester)
);
INSERT INTO students (username, password_hash, roll_no, name, batch)
  VALUES ('alice', x'00', '21BCE100', 'Alice', '2025');
INSERT INTO subjects (code, name, credits, teacher_id) VALUES
  ('MAT101', 'Calculus', 4, 1),
  ('PHY101', 'Physics', 3, 1);
`)
	require.NoError(t, err)
	return db
}

func mark(subjectID int64, semester, score int, grade string, point float64) *models.Mark {
	return &models.Mark{
		StudentID:  1,
		SubjectID:  subjectID,
		Semester:   semester,
		Score:      score,
		Grade:      grade,
		GradePoint: point,
	}
}

func TestCreate_DuplicateLeavesFirstUntouched(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, mark(1, 1, 85, "A", 9.0))
	require.NoError(t, err)

	_, err = r.Create(ctx, mark(1, 1, 40, "E", 5.0))
	assert.ErrorIs(t, err, common.ErrDuplicateResult)

	var score int
	var grade string
	require.NoError(t, db.QueryRow(
		`SELECT marks, grade FROM marks WHERE student_id=1 AND subject_id=1 AND semester=1`).
		Scan(&score, &grade))
	assert.Equal(t, 85, score)
	assert.Equal(t, "A", grade)
}

func TestCreate_SameSubjectDifferentSemester(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, mark(1, 1, 85, "A", 9.0))
	require.NoError(t, err)
	_, err = r.Create(ctx, mark(1, 2, 70, "B", 8.0))
	require.NoError(t, err)
}

func TestUpdate_ChangesExactlyThatRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, mark(1, 1, 85, "A", 9.0))
	require.NoError(t, err)
	_, err = r.Create(ctx, mark(2, 1, 55, "D", 6.0))
	require.NoError(t, err)

	require.NoError(t, r.Update(ctx, mark(1, 1, 93, "S", 10.0)))

	var grade string
	var point float64
	require.NoError(t, db.QueryRow(
		`SELECT grade, grade_point FROM marks WHERE subject_id=1`).Scan(&grade, &point))
	assert.Equal(t, "S", grade)
	assert.Equal(t, 10.0, point)

	// The other row is untouched.
	require.NoError(t, db.QueryRow(
		`SELECT grade, grade_point FROM marks WHERE subject_id=2`).Scan(&grade, &point))
	assert.Equal(t, "D", grade)
	assert.Equal(t, 6.0, point)
}

func TestUpdate_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	err := r.Update(context.Background(), mark(1, 9, 50, "D", 6.0))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, mark(1, 1, 85, "A", 9.0))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, 1, 1, 1))
	assert.ErrorIs(t, r.Delete(ctx, 1, 1, 1), common.ErrorNotFound)
}

func TestSemesterResults(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, mark(1, 1, 85, "A", 9.0))
	require.NoError(t, err)
	_, err = r.Create(ctx, mark(2, 2, 70, "B", 8.0))
	require.NoError(t, err)

	rows, err := r.SemesterResults(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MAT101", rows[0].SubjectCode)
	assert.Equal(t, 4, rows[0].Credits)
	assert.Equal(t, 85, rows[0].Score)

	// No results for a semester is an empty slice, not an error.
	rows, err = r.SemesterResults(ctx, 1, 9)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGradedCredits_NullGradePointStillCountsCredits(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, mark(1, 1, 85, "A", 9.0))
	require.NoError(t, err)
	// Legacy row with no grade point recorded.
	_, err = db.Exec(`INSERT INTO marks (student_id, subject_id, semester, marks, grade, grade_point)
	                  VALUES (1, 2, 1, 30, NULL, NULL)`)
	require.NoError(t, err)

	rows, err := r.GradedCredits(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var graded, ungraded int
	for _, row := range rows {
		if row.Graded {
			graded++
			assert.Equal(t, 9.0, row.GradePoint)
		} else {
			ungraded++
			assert.Equal(t, 3, row.Credits)
		}
	}
	assert.Equal(t, 1, graded)
	assert.Equal(t, 1, ungraded)
}

func TestGradedCredits_SemesterFilter(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, mark(1, 1, 85, "A", 9.0))
	require.NoError(t, err)
	_, err = r.Create(ctx, mark(2, 2, 70, "B", 8.0))
	require.NoError(t, err)

	rows, err := r.GradedCredits(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Credits)

	rows, err = r.GradedCredits(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
