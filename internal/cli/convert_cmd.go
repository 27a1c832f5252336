package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/portfolio-api/internal/grading"
)

type conversion struct {
	Percentage  float64 `json:"percentage"`
	Letter      string  `json:"letter"`
	GradePoint  float64 `json:"grade_point"`
	CoarsePoint float64 `json:"coarse_point"`
}

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert PERCENT...",
		Short: "Letter grade and grade points for percentages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]conversion, 0, len(args))
			for _, arg := range args {
				pct, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid percentage %q: %w", arg, err)
				}
				results = append(results, conversion{
					Percentage:  pct,
					Letter:      grading.LetterGrade(pct),
					GradePoint:  grading.GradePoint(pct),
					CoarsePoint: grading.GradePointCoarse(pct),
				})
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), results)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PERCENT\tLETTER\tPOINTS\tSTATS")
			for _, r := range results {
				fmt.Fprintf(tw, "%.2f\t%s\t%.1f\t%.1f\n", r.Percentage, r.Letter, r.GradePoint, r.CoarsePoint)
			}
			return tw.Flush()
		},
	}
}
