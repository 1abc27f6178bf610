// Package cli: exec.go implements the "minikube-envbridge exec" command.
//
// exec applies minikube's docker-env to this process, then runs the given
// command as a child. The child inherits the bridged environment, so tools
// like "docker build" or "skaffold" target the minikube daemon.
package cli

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// NewExecCommand creates the "exec" cobra command.
func NewExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command against minikube's Docker daemon",
		Long: `Apply "minikube docker-env --shell=bash" and run a command with the
resulting environment. The command's exit code is passed through.

Examples:
  minikube-envbridge exec -- docker build -t app:dev .
  minikube-envbridge exec -- docker ps`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := applyDockerEnv(cmd.Context()); err != nil {
				return err
			}

			VerboseLog("running %s", strings.Join(args, " "))

			// #nosec G204 -- running the user's command is the purpose of exec.
			child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()

			return childError(args[0], child.Run())
		},
	}
}

// childError maps the child's outcome to a CLIError. A child that exited
// non-zero yields its own exit code with an empty message (it already wrote
// its diagnostics); a child that could not start yields ExitChildFailed.
func childError(name string, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return &model.CLIError{Code: model.ExitCode(exitErr.ExitCode())}
	}
	return model.WrapCLIError(model.ExitChildFailed,
		fmt.Sprintf("failed to run %q", name), err)
}
