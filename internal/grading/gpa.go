package grading

import (
	"math"
	"sort"
)

// MaxWeightedPoints caps a single course's weighted points.
const MaxWeightedPoints = 5.0

// YearGPA is one point of the GPA trend.
type YearGPA struct {
	Year int     `json:"year"`
	GPA  float64 `json:"gpa"`
}

// LevelAddon returns the weighted-GPA bonus for a course level.
func LevelAddon(level CourseLevel) float64 {
	switch level {
	case LevelAP, LevelIB:
		return 1.0
	case LevelHonors, LevelDualEnrollment:
		return 0.5
	default:
		return 0
	}
}

// UnweightedGPA averages fine-table grade points over graded courses.
func UnweightedGPA(courses []Course) float64 {
	return averagePoints(courses, func(c Course) float64 {
		return GradePoint(*c.Grade)
	})
}

// WeightedGPA averages grade points plus the level addon over graded courses.
// A failing course earns no addon, and no course can exceed MaxWeightedPoints.
func WeightedGPA(courses []Course) float64 {
	return averagePoints(courses, weightedPoints)
}

// StatsGPA averages coarse-table grade points over graded courses. It is the
// GPA figure the admissions estimator consumes.
func StatsGPA(courses []Course) float64 {
	return averagePoints(courses, func(c Course) float64 {
		return GradePointCoarse(*c.Grade)
	})
}

// GPATrend groups courses by year and returns the weighted GPA of each year in
// ascending year order.
func GPATrend(courses []Course) []YearGPA {
	byYear := make(map[int][]Course)
	for _, course := range courses {
		byYear[course.Year] = append(byYear[course.Year], course)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	trend := make([]YearGPA, 0, len(years))
	for _, year := range years {
		trend = append(trend, YearGPA{Year: year, GPA: WeightedGPA(byYear[year])})
	}
	return trend
}

func weightedPoints(c Course) float64 {
	base := GradePoint(*c.Grade)
	if base <= 0 {
		return 0
	}
	return math.Min(base+LevelAddon(c.Level), MaxWeightedPoints)
}

func averagePoints(courses []Course, points func(Course) float64) float64 {
	var (
		sum   float64
		count int
	)
	for _, course := range courses {
		if !course.Graded() {
			continue
		}
		sum += points(course)
		count++
	}
	if count == 0 {
		return 0
	}
	return Round2(sum / float64(count))
}
