package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/grading"
)

type riskResult struct {
	GPA        float64                 `json:"gpa"`
	SAT        *float64                `json:"sat,omitempty"`
	University grading.UniversityStats `json:"university"`
	Assessment grading.RiskAssessment  `json:"assessment"`
}

func newRiskCmd(opts *options) *cobra.Command {
	var (
		gpa, sat                       float64
		avgGPA, avgSAT, acceptanceRate float64
		coursesFile                    string
	)

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Admission risk tier for one university",
		Long: "Classifies a university as Safety, Target, Reach or High Reach. The GPA comes\n" +
			"from --gpa or, with --courses, from the course list on the stats scale.\n" +
			"University statistics left unset fall back to the engine defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			switch {
			case coursesFile != "":
				courses, err := loadCourses(cmd, opts, coursesFile)
				if err != nil {
					return err
				}
				gpa = grading.StatsGPA(courses)
			case !flags.Changed("gpa"):
				return errors.New("either --gpa or --courses is required")
			}

			result := riskResult{GPA: gpa}
			if flags.Changed("sat") {
				result.SAT = &sat
			}
			if flags.Changed("avg-gpa") {
				result.University.AvgGPA = &avgGPA
			}
			if flags.Changed("avg-sat") {
				result.University.AvgSAT = &avgSAT
			}
			if flags.Changed("acceptance-rate") {
				if acceptanceRate < 0 || acceptanceRate > 1 {
					return fmt.Errorf("acceptance rate %.2f is outside 0-1", acceptanceRate)
				}
				result.University.AcceptanceRate = &acceptanceRate
			}
			result.Assessment = grading.EstimateRiskDetailed(result.GPA, result.SAT, result.University)

			if opts.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printRisk(cmd, result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&gpa, "gpa", 0, "Student GPA on the 4.0 scale")
	cmd.Flags().StringVar(&coursesFile, "courses", "", "Derive the GPA from a course list file")
	cmd.Flags().Float64Var(&sat, "sat", 0, "Best SAT score")
	cmd.Flags().Float64Var(&avgGPA, "avg-gpa", 0, "University average GPA")
	cmd.Flags().Float64Var(&avgSAT, "avg-sat", 0, "University average SAT")
	cmd.Flags().Float64Var(&acceptanceRate, "acceptance-rate", 0, "University acceptance rate (0-1)")
	cmd.MarkFlagsMutuallyExclusive("gpa", "courses")
	return cmd
}

func printRisk(cmd *cobra.Command, result riskResult) {
	out := cmd.OutOrStdout()
	a := result.Assessment
	fmt.Fprintf(out, "Tier:  %s\n", a.Tier)
	fmt.Fprintf(out, "Score: %d (gpa %+d, sat %+d, selectivity %+d)\n", a.Score, a.GPAScore, a.SATScore, a.SelectivityScore)
	if !a.SATConsidered {
		fmt.Fprintln(out, "SAT not provided")
	}
}
