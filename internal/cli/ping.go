// Package cli: ping.go implements the "minikube-envbridge ping" command.
//
// ping applies minikube's docker-env, then creates a Docker SDK client from
// the resulting environment and checks that the daemon answers. It shows
// which daemon the environment points at (minikube's, or the host's when
// the driver does not support docker-env).
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/minikube-envbridge/internal/docker"
	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// NewPingCommand creates the "ping" cobra command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the Docker daemon reachable through minikube's environment",
		Long: `Apply "minikube docker-env --shell=bash", connect to the Docker daemon it
points at and print the daemon's version.

Examples:
  minikube-envbridge ping
  minikube-envbridge ping --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := applyDockerEnv(cmd.Context())
			if err != nil {
				return err
			}
			timeout, err := cfg.PingTimeoutDuration()
			if err != nil {
				return err
			}

			c, err := docker.NewClientFromEnv()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			VerboseLog("pinging Docker daemon at %s", c.Host())
			if err := c.Ping(cmd.Context(), timeout); err != nil {
				return err
			}

			info, err := c.Info(cmd.Context())
			if err != nil {
				return err
			}

			if IsJSONOutput() {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return model.WrapCLIError(model.ExitGeneralError, "failed to marshal JSON output", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Docker daemon at %s is reachable\n", info.Host)
			fmt.Fprintf(cmd.OutOrStdout(), "  Server version: %s\n", info.ServerVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "  API version:    %s\n", info.APIVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "  OS/Arch:        %s/%s\n", info.OS, info.Arch)
			return nil
		},
	}
}
