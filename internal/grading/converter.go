package grading

import (
	"math"

	"github.com/shopspring/decimal"
)

type pointStep struct {
	min    float64
	points float64
}

type letterStep struct {
	min    float64
	letter string
}

// fineScale backs GPA and course grading.
var fineScale = []pointStep{
	{93, 4.0}, {90, 3.7}, {87, 3.3}, {83, 3.0}, {80, 2.7}, {77, 2.3},
	{73, 2.0}, {70, 1.7}, {67, 1.3}, {65, 1.0},
}

// coarseScale backs the stats helpers that feed admissions risk. It is not
// interchangeable with fineScale: 77-79 and 60-64 land in different buckets.
var coarseScale = []pointStep{
	{93, 4.0}, {90, 3.7}, {87, 3.3}, {83, 3.0}, {80, 2.7}, {70, 2.0}, {60, 1.0},
}

var letterScale = []letterStep{
	{93, "A"}, {90, "A-"}, {87, "B+"}, {83, "B"}, {80, "B-"}, {77, "C+"},
	{73, "C"}, {70, "C-"}, {67, "D+"}, {65, "D"},
}

// GradePoint converts a percentage into 4.0-scale points using the fine table.
// Inputs outside 0-100 are not rejected: anything at or above 93 is 4.0 and
// anything below 65 is 0.
func GradePoint(percentage float64) float64 {
	return lookupPoints(fineScale, percentage)
}

// GradePointCoarse converts a percentage using the coarse stats table.
func GradePointCoarse(percentage float64) float64 {
	return lookupPoints(coarseScale, percentage)
}

// LetterGrade maps a percentage to its letter.
func LetterGrade(percentage float64) string {
	for _, step := range letterScale {
		if percentage >= step.min {
			return step.letter
		}
	}
	return "F"
}

func lookupPoints(scale []pointStep, percentage float64) float64 {
	for _, step := range scale {
		if percentage >= step.min {
			return step.points
		}
	}
	return 0
}

// Round2 rounds half-up to two decimal places. Ties are resolved against the
// shortest decimal form of v, so Round2(1.005) is 1.01.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
