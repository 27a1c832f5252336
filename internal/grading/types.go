// Package grading holds the deterministic GPA and course grade computations.
//
// Everything here is a pure function over in-memory records: no I/O, no shared
// state, no errors. Callers own loading, persisting and validating the records.
package grading

// Semester identifies the term a course was taken in.
type Semester string

const (
	SemesterFall   Semester = "Fall"
	SemesterSpring Semester = "Spring"
	SemesterSummer Semester = "Summer"
	SemesterWinter Semester = "Winter"
)

// CourseLevel describes the rigor of a course.
type CourseLevel string

const (
	LevelRegular        CourseLevel = "Regular"
	LevelHonors         CourseLevel = "Honors"
	LevelAP             CourseLevel = "AP"
	LevelIB             CourseLevel = "IB"
	LevelDualEnrollment CourseLevel = "DualEnrollment"
)

// AssignmentType is the grading category an assignment belongs to.
type AssignmentType string

const (
	AssignmentHomework      AssignmentType = "Homework"
	AssignmentQuiz          AssignmentType = "Quiz"
	AssignmentTest          AssignmentType = "Test"
	AssignmentProject       AssignmentType = "Project"
	AssignmentLab           AssignmentType = "Lab"
	AssignmentParticipation AssignmentType = "Participation"
	AssignmentMidterm       AssignmentType = "Midterm"
	AssignmentFinalExam     AssignmentType = "FinalExam"
	AssignmentOther         AssignmentType = "Other"
)

// Course is one academic course taken in one term. A nil Grade means no grade
// has been recorded yet and the course is left out of every GPA aggregate.
type Course struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Year     int         `json:"year" yaml:"year"`
	Semester Semester    `json:"semester" yaml:"semester"`
	Level    CourseLevel `json:"level" yaml:"level"`
	Grade    *float64    `json:"grade" yaml:"grade"`
}

// Graded reports whether the course has a recorded grade.
func (c Course) Graded() bool {
	return c.Grade != nil
}

// Assignment is a single gradable item within a course. A nil EarnedPoints
// marks the assignment as not graded yet.
type Assignment struct {
	ID               string         `json:"id" yaml:"id"`
	CourseID         string         `json:"course_id" yaml:"course_id"`
	UserID           string         `json:"user_id" yaml:"user_id"`
	Type             AssignmentType `json:"assignment_type" yaml:"assignment_type"`
	TotalPoints      float64        `json:"total_points" yaml:"total_points"`
	EarnedPoints     *float64       `json:"earned_points" yaml:"earned_points"`
	WeightPercentage float64        `json:"weight_percentage" yaml:"weight_percentage"`
}

// Graded reports whether points have been earned on the assignment.
func (a Assignment) Graded() bool {
	return a.EarnedPoints != nil
}
