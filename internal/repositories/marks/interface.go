// Package marks provides persistence for recorded results.
package marks

import (
	"context"

	"gradebook/internal/models"
)

type Repository interface {
	// Create inserts a new mark. The UNIQUE(student_id, subject_id,
	// semester) constraint makes the duplicate check atomic with the
	// insert; duplicates yield common.ErrDuplicateResult.
	Create(ctx context.Context, m *models.Mark) (*models.Mark, error)
	// Update replaces score, grade and grade point of the mark matching
	// (StudentID, SubjectID, Semester). Missing marks yield
	// common.ErrorNotFound.
	Update(ctx context.Context, m *models.Mark) error
	// Delete removes the mark matching the key. Missing marks yield
	// common.ErrorNotFound.
	Delete(ctx context.Context, studentID, subjectID int64, semester int) error

	// SemesterResults lists a student's marks for one semester joined
	// with subject details.
	SemesterResults(ctx context.Context, studentID int64, semester int) ([]models.ResultRow, error)
	// ResultsForTeacher lists all marks for subjects owned by a teacher.
	ResultsForTeacher(ctx context.Context, teacherID int64) ([]models.TeacherResultRow, error)

	// GradedCredits returns the (grade point, credits) pairs feeding
	// cumulative GPA. Semester <= 0 means all semesters.
	GradedCredits(ctx context.Context, studentID int64, semester int) ([]models.GradedCredit, error)
}
