package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"

	"gradebook/internal/common"
	"gradebook/internal/dbx"
	"gradebook/internal/grading"
	"gradebook/internal/models"
	"gradebook/internal/repositories/marks"
	"gradebook/internal/repositories/students"
	"gradebook/internal/repositories/subjects"
)

// ClassRow is one line of the class list: a student with their
// cumulative GPA.
type ClassRow struct {
	StudentID int64
	Username  string
	RollNo    string
	Name      string
	CGPA      float64
}

// ClassSort selects the ordering of the class list.
type ClassSort int

const (
	ClassSortNone ClassSort = iota
	ClassSortCGPADesc
	ClassSortCGPAAsc
)

// Marksheet is the data behind a semester marksheet. Rendering (plain
// text, PDF, ...) is up to the caller.
type Marksheet struct {
	Student  models.Student
	Semester int
	Rows     []models.ResultRow
	SGPA     float64
	CGPA     float64
}

// ResultService enters, updates, deletes and aggregates results.
// Grades and grade points are always derived from the raw score by the
// grading engine; no method accepts them from the caller.
type ResultService struct {
	db       *sql.DB
	students students.Repository
	subjects subjects.Repository
	marks    marks.Repository
}

func NewResultService(db *sql.DB, st students.Repository, sub subjects.Repository, mk marks.Repository) *ResultService {
	return &ResultService{db: db, students: st, subjects: sub, marks: mk}
}

// AddSubject creates a subject owned by the teacher. Duplicate codes
// yield common.ErrDuplicateSubject.
func (s *ResultService) AddSubject(ctx context.Context, teacherID int64, code, name string, credits int) (*models.Subject, error) {
	if credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", common.ErrValidation)
	}
	return s.subjects.Create(ctx, &models.Subject{
		Code:      code,
		Name:      name,
		Credits:   credits,
		TeacherID: teacherID,
	})
}

// FindStudent resolves a student by username.
func (s *ResultService) FindStudent(ctx context.Context, username string) (*models.Student, error) {
	return s.students.GetByUsername(ctx, username)
}

// SubjectsOf lists the subjects owned by a teacher.
func (s *ResultService) SubjectsOf(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	return s.subjects.GetByTeacher(ctx, teacherID)
}

// EnterResult records a new mark. The subject must be owned by the
// teacher. Scores outside 0-100 yield common.ErrInvalidScore and
// nothing is written. An existing mark for the same (student, subject,
// semester) yields common.ErrDuplicateResult and leaves the first entry
// untouched; the ownership check and the insert run in one transaction
// and the uniqueness guarantee itself comes from the table constraint,
// not from a prior read.
func (s *ResultService) EnterResult(ctx context.Context, teacherID, studentID, subjectID int64, semester, score int) (*models.Mark, error) {
	if semester <= 0 {
		return nil, fmt.Errorf("%w: semester must be positive", common.ErrValidation)
	}
	grade, err := grading.GradeOf(score)
	if err != nil {
		return nil, err
	}

	mark := &models.Mark{
		StudentID:  studentID,
		SubjectID:  subjectID,
		Semester:   semester,
		Score:      score,
		Grade:      grade.Letter,
		GradePoint: grade.Point,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkOwnership(ctx, tx, teacherID, subjectID); err != nil {
			return err
		}
		_, err := marks.NewSQLiteRepository(tx).Create(ctx, mark)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mark, nil
}

// UpdateResult replaces the score of an existing mark and recomputes
// grade and grade point. Missing marks yield common.ErrorNotFound.
func (s *ResultService) UpdateResult(ctx context.Context, teacherID, studentID, subjectID int64, semester, score int) (*models.Mark, error) {
	grade, err := grading.GradeOf(score)
	if err != nil {
		return nil, err
	}

	mark := &models.Mark{
		StudentID:  studentID,
		SubjectID:  subjectID,
		Semester:   semester,
		Score:      score,
		Grade:      grade.Letter,
		GradePoint: grade.Point,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkOwnership(ctx, tx, teacherID, subjectID); err != nil {
			return err
		}
		return marks.NewSQLiteRepository(tx).Update(ctx, mark)
	})
	if err != nil {
		return nil, err
	}
	return mark, nil
}

// DeleteResult removes an existing mark. Missing marks yield
// common.ErrorNotFound.
func (s *ResultService) DeleteResult(ctx context.Context, teacherID, studentID, subjectID int64, semester int) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkOwnership(ctx, tx, teacherID, subjectID); err != nil {
			return err
		}
		return marks.NewSQLiteRepository(tx).Delete(ctx, studentID, subjectID, semester)
	})
}

// SemesterResults lists a student's marks for one semester. An empty
// slice is a valid answer, not an error.
func (s *ResultService) SemesterResults(ctx context.Context, studentID int64, semester int) ([]models.ResultRow, error) {
	return s.marks.SemesterResults(ctx, studentID, semester)
}

// ResultsForTeacher lists every mark recorded for the teacher's
// subjects.
func (s *ResultService) ResultsForTeacher(ctx context.Context, teacherID int64) ([]models.TeacherResultRow, error) {
	return s.marks.ResultsForTeacher(ctx, teacherID)
}

// SemesterGPA computes the credit-weighted GPA for one semester,
// rounded to two decimals. No recorded marks means 0.0, never an error.
func (s *ResultService) SemesterGPA(ctx context.Context, studentID int64, semester int) (float64, error) {
	rows, err := s.marks.GradedCredits(ctx, studentID, semester)
	if err != nil {
		return 0, err
	}
	return weightedGPA(rows), nil
}

// CumulativeGPA computes the credit-weighted GPA across all semesters,
// rounded to two decimals.
func (s *ResultService) CumulativeGPA(ctx context.Context, studentID int64) (float64, error) {
	rows, err := s.marks.GradedCredits(ctx, studentID, 0)
	if err != nil {
		return 0, err
	}
	return weightedGPA(rows), nil
}

// ClassList returns every student with their CGPA, optionally sorted.
func (s *ResultService) ClassList(ctx context.Context, order ClassSort) ([]ClassRow, error) {
	all, err := s.students.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]ClassRow, 0, len(all))
	for _, st := range all {
		cgpa, err := s.CumulativeGPA(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		list = append(list, ClassRow{
			StudentID: st.ID,
			Username:  st.Username,
			RollNo:    st.RollNo,
			Name:      st.Name,
			CGPA:      cgpa,
		})
	}

	switch order {
	case ClassSortCGPADesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].CGPA > list[j].CGPA })
	case ClassSortCGPAAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].CGPA < list[j].CGPA })
	}
	return list, nil
}

// MarksheetFor assembles the marksheet data for one semester.
func (s *ResultService) MarksheetFor(ctx context.Context, studentID int64, semester int) (*Marksheet, error) {
	st, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	rows, err := s.SemesterResults(ctx, studentID, semester)
	if err != nil {
		return nil, err
	}
	sgpa, err := s.SemesterGPA(ctx, studentID, semester)
	if err != nil {
		return nil, err
	}
	cgpa, err := s.CumulativeGPA(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &Marksheet{Student: *st, Semester: semester, Rows: rows, SGPA: sgpa, CGPA: cgpa}, nil
}

// checkOwnership verifies the subject exists and belongs to the teacher.
func (s *ResultService) checkOwnership(ctx context.Context, tx dbx.DBTX, teacherID, subjectID int64) error {
	subj, err := subjects.NewSQLiteRepository(tx).GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subj.TeacherID != teacherID {
		return common.ErrorNotFound
	}
	return nil
}

// weightedGPA sums grade points weighted by credits at full precision
// and rounds only the final quotient. Ungraded rows contribute zero
// points but their credits still count, matching the historical
// behavior of stored NULL grade points.
func weightedGPA(rows []models.GradedCredit) float64 {
	var points float64
	var credits int
	for _, row := range rows {
		if row.Graded {
			points += row.GradePoint * float64(row.Credits)
		}
		credits += row.Credits
	}
	if credits == 0 {
		return 0.0
	}
	return math.Round(points/float64(credits)*100) / 100
}
