package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradePointBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		want       float64
	}{
		{100, 4.0}, {93, 4.0}, {92.99, 3.7}, {90, 3.7}, {87, 3.3}, {86.9, 3.0},
		{83, 3.0}, {80, 2.7}, {77, 2.3}, {73, 2.0}, {70, 1.7}, {67, 1.3},
		{65, 1.0}, {64.99, 0}, {0, 0}, {-10, 0}, {140, 4.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GradePoint(tc.percentage), "percentage %v", tc.percentage)
	}
}

func TestGradePointTopBandIsFlat(t *testing.T) {
	for p := 93.0; p <= 100; p += 0.25 {
		assert.Equal(t, 4.0, GradePoint(p), "percentage %v", p)
	}
}

func TestGradePointCoarseDiffersFromFine(t *testing.T) {
	cases := []struct {
		percentage float64
		coarse     float64
		fine       float64
	}{
		{95, 4.0, 4.0},
		{81, 2.7, 2.7},
		{78, 2.0, 2.3},
		{71, 2.0, 1.7},
		{66, 1.0, 1.0},
		{62, 1.0, 0},
		{59, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.coarse, GradePointCoarse(tc.percentage), "coarse %v", tc.percentage)
		assert.Equal(t, tc.fine, GradePoint(tc.percentage), "fine %v", tc.percentage)
	}
}

func TestLetterGrade(t *testing.T) {
	cases := map[float64]string{
		100: "A", 93: "A", 91.25: "A-", 90: "A-", 88: "B+", 85: "B", 80: "B-",
		79: "C+", 75: "C", 70: "C-", 68: "D+", 65: "D", 64.9: "F", 0: "F",
	}
	for percentage, want := range cases {
		assert.Equal(t, want, LetterGrade(percentage), "percentage %v", percentage)
	}
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, 3.65, Round2(7.3/2))
	assert.Equal(t, 4.15, Round2(8.3/2))
	assert.Equal(t, 2.13, Round2(2.125))
	assert.Equal(t, 3.33, Round2(10.0/3))
	assert.Equal(t, 0.0, Round2(0))
	// ties resolve from the shortest decimal form of the float
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 1.02, Round2(1.015))
}
