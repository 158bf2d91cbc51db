package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/common"
)

func TestGradeOf_Thresholds(t *testing.T) {
	tests := []struct {
		score  int
		letter string
		point  float64
	}{
		{0, "F", 0.0},
		{39, "F", 0.0},
		{40, "E", 5.0},
		{49, "E", 5.0},
		{50, "D", 6.0},
		{60, "C", 7.0},
		{70, "B", 8.0},
		{79, "B", 8.0},
		{80, "A", 9.0},
		{89, "A", 9.0},
		{90, "S", 10.0},
		{100, "S", 10.0},
	}

	for _, tt := range tests {
		g, err := GradeOf(tt.score)
		require.NoError(t, err)
		assert.Equal(t, tt.letter, g.Letter, "score %d", tt.score)
		assert.Equal(t, tt.point, g.Point, "score %d", tt.score)
	}
}

func TestGradeOf_Monotonic(t *testing.T) {
	prev := -1.0
	for score := 0; score <= 100; score++ {
		g, err := GradeOf(score)
		require.NoError(t, err)
		require.GreaterOrEqual(t, g.Point, prev, "score %d", score)
		prev = g.Point
	}
}

func TestGradeOf_OutOfRange(t *testing.T) {
	for _, score := range []int{-1, 101, 1000} {
		_, err := GradeOf(score)
		assert.ErrorIs(t, err, common.ErrInvalidScore, "score %d", score)
	}
}
