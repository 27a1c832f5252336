// Package cli implements gpactl, an offline front end to the grading engine.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type options struct {
	json     bool
	validate *validator.Validate
}

// NewRootCmd creates the top-level "gpactl" command with every subcommand
// registered.
func NewRootCmd() *cobra.Command {
	opts := &options{validate: validator.New()}

	root := &cobra.Command{
		Use:           "gpactl",
		Short:         "Compute GPA, course grades and admission risk from local files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	root.AddCommand(
		newGPACmd(opts),
		newCourseGradeCmd(opts),
		newRiskCmd(opts),
		newConvertCmd(opts),
	)

	return root
}

// readDocument decodes a YAML or JSON file into dest. A path of "-" reads
// from the command's stdin.
func readDocument(cmd *cobra.Command, path string, dest interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
