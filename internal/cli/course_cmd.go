package cli

import (
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/grading"
)

type assignmentInput struct {
	Name             string                 `yaml:"name"`
	Type             grading.AssignmentType `yaml:"assignment_type" validate:"required,oneof=Homework Quiz Test Project Lab Participation Midterm FinalExam Other"`
	TotalPoints      float64                `yaml:"total_points" validate:"gt=0"`
	EarnedPoints     *float64               `yaml:"earned_points" validate:"omitempty,min=0"`
	WeightPercentage float64                `yaml:"weight_percentage" validate:"min=0,max=100"`
}

type courseGradeDocument struct {
	Level       grading.CourseLevel                `yaml:"level" validate:"omitempty,oneof=Regular Honors AP IB DualEnrollment"`
	Weights     map[grading.AssignmentType]float64 `yaml:"weights" validate:"dive,keys,oneof=Homework Quiz Test Project Lab Participation Midterm FinalExam Other,endkeys,min=0,max=100"`
	Assignments []assignmentInput                  `yaml:"assignments" validate:"dive"`
}

type courseGradeResult struct {
	Level        grading.CourseLevel    `json:"level"`
	Breakdown    grading.GradeBreakdown `json:"breakdown"`
	Graded       bool                   `json:"graded"`
	DisplayGrade float64                `json:"display_grade"`
	LetterGrade  string                 `json:"letter_grade"`
	GradePoint   float64                `json:"grade_point"`
}

func newCourseGradeCmd(opts *options) *cobra.Command {
	var (
		file  string
		level string
	)

	cmd := &cobra.Command{
		Use:   "course-grade",
		Short: "Course grade from assignments and category weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc courseGradeDocument
			if err := readDocument(cmd, file, &doc); err != nil {
				return err
			}
			if level != "" {
				doc.Level = grading.CourseLevel(level)
			}
			if err := opts.validate.Struct(doc); err != nil {
				return fmt.Errorf("invalid course document: %w", err)
			}
			if len(doc.Assignments) == 0 {
				return errors.New("no assignments found")
			}

			result := computeCourseGrade(doc)
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return printCourseGrade(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Assignments document (YAML or JSON, - for stdin)")
	cmd.Flags().StringVar(&level, "level", "", "Course level override (Regular, Honors, AP, IB, DualEnrollment)")
	return cmd
}

func computeCourseGrade(doc courseGradeDocument) courseGradeResult {
	level := doc.Level
	if level == "" {
		level = grading.LevelRegular
	}
	assignments := make([]grading.Assignment, 0, len(doc.Assignments))
	for i, in := range doc.Assignments {
		assignments = append(assignments, grading.Assignment{
			ID:               fmt.Sprintf("assignment-%d", i+1),
			Type:             in.Type,
			TotalPoints:      in.TotalPoints,
			EarnedPoints:     in.EarnedPoints,
			WeightPercentage: in.WeightPercentage,
		})
	}

	breakdown := grading.Calculate(assignments, grading.WeightConfig(doc.Weights))
	result := courseGradeResult{Level: level, Breakdown: breakdown, Graded: breakdown.HasGradedWork()}
	if result.Graded {
		result.DisplayGrade = grading.Round2(grading.LevelBoost(breakdown.CalculatedGrade, level))
		result.LetterGrade = grading.LetterGrade(result.DisplayGrade)
		result.GradePoint = grading.GradePoint(grading.Round2(breakdown.CalculatedGrade))
	}
	return result
}

func printCourseGrade(cmd *cobra.Command, result courseGradeResult) error {
	out := cmd.OutOrStdout()
	if !result.Graded {
		fmt.Fprintln(out, "No graded assignments yet.")
		return nil
	}

	categories := make([]grading.AssignmentType, 0, len(result.Breakdown.Categories))
	for category := range result.Breakdown.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tEARNED\tTOTAL\tPERCENT\tWEIGHT\tWEIGHTED")
	for _, category := range categories {
		score := result.Breakdown.Categories[category]
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			category, score.Earned, score.Total, score.Percentage, score.Weight, score.WeightedScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Calculated grade: %.2f\n", grading.Round2(result.Breakdown.CalculatedGrade))
	fmt.Fprintf(out, "Display grade:    %.2f (%s, %s)\n", result.DisplayGrade, result.LetterGrade, result.Level)
	fmt.Fprintf(out, "Grade point:      %.1f\n", result.GradePoint)
	if result.Breakdown.MissingWeight > 0 {
		fmt.Fprintf(out, "Missing weight:   %.2f\n", grading.Round2(result.Breakdown.MissingWeight))
	}
	return nil
}
