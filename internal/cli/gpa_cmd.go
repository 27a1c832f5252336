package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/grading"
)

type courseInput struct {
	Name     string              `yaml:"name"`
	Year     int                 `yaml:"year" validate:"required"`
	Semester grading.Semester    `yaml:"semester" validate:"omitempty,oneof=Fall Spring Summer Winter"`
	Level    grading.CourseLevel `yaml:"level" validate:"omitempty,oneof=Regular Honors AP IB DualEnrollment"`
	Grade    *float64            `yaml:"grade" validate:"omitempty,min=0,max=100"`
}

type courseDocument struct {
	Courses []courseInput `yaml:"courses" validate:"dive"`
}

type gpaResult struct {
	Unweighted    float64           `json:"unweighted"`
	Weighted      float64           `json:"weighted"`
	Stats         float64           `json:"stats"`
	Trend         []grading.YearGPA `json:"trend"`
	GradedCourses int               `json:"graded_courses"`
	TotalCourses  int               `json:"total_courses"`
}

func newGPACmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "gpa",
		Short: "Unweighted, weighted and per-year GPA for a course list",
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := loadCourses(cmd, opts, file)
			if err != nil {
				return err
			}
			result := computeGPA(courses)
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printGPA(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Course list (YAML or JSON, - for stdin)")
	return cmd
}

func loadCourses(cmd *cobra.Command, opts *options, path string) ([]grading.Course, error) {
	var doc courseDocument
	if err := readDocument(cmd, path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Courses) == 0 {
		return nil, errors.New("no courses found")
	}
	if err := opts.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid course list: %w", err)
	}

	courses := make([]grading.Course, 0, len(doc.Courses))
	for i, in := range doc.Courses {
		level := in.Level
		if level == "" {
			level = grading.LevelRegular
		}
		courses = append(courses, grading.Course{
			ID:       fmt.Sprintf("course-%d", i+1),
			Name:     in.Name,
			Year:     in.Year,
			Semester: in.Semester,
			Level:    level,
			Grade:    in.Grade,
		})
	}
	return courses, nil
}

func computeGPA(courses []grading.Course) gpaResult {
	graded := 0
	for _, course := range courses {
		if course.Graded() {
			graded++
		}
	}
	return gpaResult{
		Unweighted:    grading.UnweightedGPA(courses),
		Weighted:      grading.WeightedGPA(courses),
		Stats:         grading.StatsGPA(courses),
		Trend:         grading.GPATrend(courses),
		GradedCourses: graded,
		TotalCourses:  len(courses),
	}
}

func printGPA(cmd *cobra.Command, result gpaResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Unweighted GPA: %.2f\n", result.Unweighted)
	fmt.Fprintf(out, "Weighted GPA:   %.2f\n", result.Weighted)
	fmt.Fprintf(out, "Graded courses: %d of %d\n", result.GradedCourses, result.TotalCourses)
	if len(result.Trend) == 0 {
		return
	}
	fmt.Fprintln(out, "Trend:")
	for _, point := range result.Trend {
		fmt.Fprintf(out, "  %d  %.2f\n", point.Year, point.GPA)
	}
}
