package dto

import "github.com/noah-isme/portfolio-api/internal/grading"

// GPASummaryResponse is the GPA overview for one user.
type GPASummaryResponse struct {
	Unweighted    float64           `json:"unweighted"`
	Weighted      float64           `json:"weighted"`
	Trend         []grading.YearGPA `json:"trend"`
	GradedCourses int               `json:"graded_courses"`
	TotalCourses  int               `json:"total_courses"`
}

// CourseBreakdownResponse presents a course's live grade.
type CourseBreakdownResponse struct {
	CourseID     string                 `json:"course_id"`
	Level        grading.CourseLevel    `json:"level"`
	Breakdown    grading.GradeBreakdown `json:"breakdown"`
	DisplayGrade float64                `json:"display_grade"`
	LetterGrade  string                 `json:"letter_grade"`
	GradePoint   float64                `json:"grade_point"`
	Weights      grading.WeightConfig   `json:"weights"`
}

// AdmissionRiskResponse is the risk classification for one university.
type AdmissionRiskResponse struct {
	UniversityID   string                 `json:"university_id"`
	UniversityName string                 `json:"university_name"`
	StudentGPA     float64                `json:"student_gpa"`
	StudentSAT     *float64               `json:"student_sat,omitempty"`
	Assessment     grading.RiskAssessment `json:"assessment"`
}

// RecalculationResponse acknowledges a queued recalculation.
type RecalculationResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}
