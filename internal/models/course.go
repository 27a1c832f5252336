package models

import (
	"time"

	"github.com/noah-isme/portfolio-api/internal/grading"
)

// Course stores one academic course a user took in one term.
type Course struct {
	ID        string              `db:"id" json:"id"`
	UserID    string              `db:"user_id" json:"user_id"`
	Name      string              `db:"name" json:"name"`
	Year      int                 `db:"year" json:"year"`
	Semester  grading.Semester    `db:"semester" json:"semester"`
	Level     grading.CourseLevel `db:"level" json:"level"`
	Grade     *float64            `db:"grade" json:"grade"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
}

// ToGrading converts the row into the engine's course record.
func (c Course) ToGrading() grading.Course {
	return grading.Course{
		ID:       c.ID,
		Name:     c.Name,
		Year:     c.Year,
		Semester: c.Semester,
		Level:    c.Level,
		Grade:    c.Grade,
	}
}

// GradingCourses converts a slice of rows.
func GradingCourses(courses []Course) []grading.Course {
	result := make([]grading.Course, 0, len(courses))
	for _, course := range courses {
		result = append(result, course.ToGrading())
	}
	return result
}

// CourseWeight is a per-course override for one assignment category.
type CourseWeight struct {
	CourseID       string                 `db:"course_id" json:"course_id"`
	AssignmentType grading.AssignmentType `db:"assignment_type" json:"assignment_type"`
	Weight         float64                `db:"weight" json:"weight"`
}

// WeightConfigFrom folds stored overrides into an engine weight config.
func WeightConfigFrom(weights []CourseWeight) grading.WeightConfig {
	config := make(grading.WeightConfig, len(weights))
	for _, w := range weights {
		config[w.AssignmentType] = w.Weight
	}
	return config
}
