package models

// Mark is one recorded result. Grade and GradePoint are always derived
// from Score by the grading engine, never accepted from callers, so the
// pair cannot drift out of sync with the raw score. At most one Mark
// exists per (StudentID, SubjectID, Semester).
type Mark struct {
	ID         int64
	StudentID  int64
	SubjectID  int64
	Semester   int
	Score      int
	Grade      string
	GradePoint float64
}

// GradedCredit is the (grade point, credits) projection of a Mark joined
// with its Subject, used for GPA aggregation. Graded is false when the
// stored grade_point is NULL; such rows contribute zero points but their
// credits still count toward the denominator.
type GradedCredit struct {
	GradePoint float64
	Credits    int
	Graded     bool
}

// ResultRow is a Mark joined with its subject for display.
type ResultRow struct {
	SubjectCode string
	SubjectName string
	Credits     int
	Semester    int
	Score       int
	Grade       string
}

// TeacherResultRow is a Mark joined with student and subject details,
// scoped to subjects owned by one teacher.
type TeacherResultRow struct {
	StudentUsername string
	RollNo          string
	StudentName     string
	SubjectCode     string
	SubjectName     string
	Semester        int
	Score           int
	Grade           string
}
