// Package grading maps raw scores to letter grades and grade points.
package grading

import "gradebook/internal/common"

// Grade is a letter grade with its grade point on the 0-10 scale.
type Grade struct {
	Letter string
	Point  float64
}

// gradeBands is the fixed threshold table, highest band first.
var gradeBands = []struct {
	min   int
	grade Grade
}{
	{90, Grade{"S", 10.0}},
	{80, Grade{"A", 9.0}},
	{70, Grade{"B", 8.0}},
	{60, Grade{"C", 7.0}},
	{50, Grade{"D", 6.0}},
	{40, Grade{"E", 5.0}},
	{0, Grade{"F", 0.0}},
}

// GradeOf returns the grade for a raw score. Scores outside 0-100 are a
// caller contract violation and yield common.ErrInvalidScore; the
// function never clamps.
func GradeOf(score int) (Grade, error) {
	if score < 0 || score > 100 {
		return Grade{}, common.ErrInvalidScore
	}
	for _, band := range gradeBands {
		if score >= band.min {
			return band.grade, nil
		}
	}
	// unreachable: the last band has min 0
	return Grade{"F", 0.0}, nil
}
