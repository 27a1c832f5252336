package models

import (
	"time"

	"github.com/noah-isme/portfolio-api/internal/grading"
)

// University holds the published admission statistics of a school.
type University struct {
	ID             string   `db:"id" json:"id"`
	Name           string   `db:"name" json:"name"`
	Location       *string  `db:"location" json:"location,omitempty"`
	AvgGPA         *float64 `db:"avg_gpa" json:"avg_gpa"`
	AvgSAT         *float64 `db:"avg_sat" json:"avg_sat"`
	AcceptanceRate *float64 `db:"acceptance_rate" json:"acceptance_rate"`
}

// Stats returns the subset the admissions estimator consumes.
func (u University) Stats() grading.UniversityStats {
	return grading.UniversityStats{AvgGPA: u.AvgGPA, AvgSAT: u.AvgSAT, AcceptanceRate: u.AcceptanceRate}
}

// TestType enumerates standardized tests.
type TestType string

const (
	TestTypeSAT TestType = "SAT"
	TestTypeACT TestType = "ACT"
)

// TestScore is one recorded standardized test result.
type TestScore struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	TestType  TestType  `db:"test_type" json:"test_type"`
	Score     float64   `db:"score" json:"score"`
	TakenAt   time.Time `db:"taken_at" json:"taken_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
