package models

// Subject is a course owned by a teacher. Credits weight the subject's
// contribution to GPA and must be positive.
type Subject struct {
	ID        int64
	Code      string
	Name      string
	Credits   int
	TeacherID int64
}
