// Package cli: env.go implements the "minikube-envbridge env" command.
//
// The env command applies minikube's docker-env to this process and prints
// what it applied, either as re-quoted export lines that can be passed to
// eval, or as JSON with --json.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// envOutput is the JSON shape printed by "env --json".
type envOutput struct {
	Variables []model.Assignment `json:"variables"`
}

// NewEnvCommand creates the "env" cobra command.
func NewEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the Docker environment applied from minikube",
		Long: `Apply "minikube docker-env --shell=bash" and print the variables it set.

Nothing is printed when the active driver does not support docker-env.

Examples:
  eval "$(minikube-envbridge env)"
  minikube-envbridge env --json
  minikube-envbridge env --config envbridge.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, applied, err := applyDockerEnv(cmd.Context())
			if err != nil {
				return err
			}
			if IsJSONOutput() {
				return writeEnvJSON(cmd.OutOrStdout(), applied)
			}
			writeEnvText(cmd.OutOrStdout(), applied)
			return nil
		},
	}
}

// writeEnvText prints one `export KEY=VALUE` line per assignment, with the
// value quoted for POSIX shells.
func writeEnvText(w io.Writer, applied []model.Assignment) {
	for _, line := range FormatExports(applied) {
		fmt.Fprintln(w, line)
	}
}

// writeEnvJSON prints the assignments as an indented JSON object. An empty
// result is printed as an empty array, not null.
func writeEnvJSON(w io.Writer, applied []model.Assignment) error {
	if applied == nil {
		applied = []model.Assignment{}
	}
	data, err := json.MarshalIndent(envOutput{Variables: applied}, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to marshal JSON output", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// FormatExports renders assignments as shell export lines safe to eval.
func FormatExports(applied []model.Assignment) []string {
	lines := make([]string, 0, len(applied))
	for _, a := range applied {
		lines = append(lines, "export "+a.Key+"="+shellescape.Quote(a.Value))
	}
	return lines
}
