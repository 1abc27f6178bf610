// Package cli implements the cobra-based CLI commands for minikube-envbridge.
//
// Each subcommand (env, exec, ping) is defined in its own file within this
// package. This file defines the root command that serves as the parent for
// all subcommands and handles global flags, logging and error output.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose lowers the log level to debug.
	verbose bool

	// configPath is the optional YAML/JSONC configuration file.
	configPath string
)

// logger is the CLI-wide logger. It writes to stderr so stdout stays
// reserved for command output (export lines, JSON).
var logger = newLogger(os.Stderr, false)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. Actual functionality
// is provided by the env, exec and ping subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minikube-envbridge",
		Short: "Point Docker clients at minikube's Docker daemon",
		Long: `minikube-envbridge runs "minikube docker-env --shell=bash", parses the
exported variables (DOCKER_HOST, DOCKER_TLS_VERIFY, DOCKER_CERT_PATH, ...)
and applies them to its own process environment.

Commands run afterwards (exec) or Docker API calls made by this process (ping)
therefore talk to the daemon inside the minikube VM instead of the host's.
When the active minikube driver has no Docker daemon to expose, the
environment is left unchanged and no error is reported.`,

		// We print errors ourselves (text or JSON based on --json).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(cmd.ErrOrStderr(), verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML or JSONC config file")

	rootCmd.AddCommand(NewEnvCommand())
	rootCmd.AddCommand(NewExecCommand())
	rootCmd.AddCommand(NewPingCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	os.Exit(run(rootCmd, os.Stderr))
}

// run executes rootCmd and returns the process exit code, printing any
// error to errOut.
func run(rootCmd *cobra.Command, errOut io.Writer) int {
	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		// An exec child that exits non-zero already reported its own
		// failure on the inherited stderr.
		if cliErr.Message != "" {
			printError(errOut, cliErr.Message, cliErr.Err)
		}
		return int(cliErr.Code)
	}

	printError(errOut, err.Error(), nil)
	return int(model.ExitGeneralError)
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// newLogger builds the CLI logger: warnings and above by default, debug
// when verbose is set.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// VerboseLog prints a debug message that is only shown with --verbose.
func VerboseLog(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
