package models

import (
	"time"

	"github.com/noah-isme/portfolio-api/internal/grading"
)

// Assignment stores one gradable item within a course.
type Assignment struct {
	ID               string                 `db:"id" json:"id"`
	CourseID         string                 `db:"course_id" json:"course_id"`
	UserID           string                 `db:"user_id" json:"user_id"`
	Name             string                 `db:"name" json:"name"`
	AssignmentType   grading.AssignmentType `db:"assignment_type" json:"assignment_type"`
	TotalPoints      float64                `db:"total_points" json:"total_points"`
	EarnedPoints     *float64               `db:"earned_points" json:"earned_points"`
	WeightPercentage float64                `db:"weight_percentage" json:"weight_percentage"`
	DueDate          *time.Time             `db:"due_date" json:"due_date,omitempty"`
	CreatedAt        time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time              `db:"updated_at" json:"updated_at"`
}

// GradingAssignments converts rows into engine records.
func GradingAssignments(assignments []Assignment) []grading.Assignment {
	result := make([]grading.Assignment, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, grading.Assignment{
			ID:               a.ID,
			CourseID:         a.CourseID,
			UserID:           a.UserID,
			Type:             a.AssignmentType,
			TotalPoints:      a.TotalPoints,
			EarnedPoints:     a.EarnedPoints,
			WeightPercentage: a.WeightPercentage,
		})
	}
	return result
}
