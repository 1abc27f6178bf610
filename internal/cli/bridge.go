package cli

import (
	"context"
	"errors"

	"github.com/shinji-kodama/minikube-envbridge/internal/config"
	"github.com/shinji-kodama/minikube-envbridge/internal/envbridge"
	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// applyDockerEnv loads the configuration, runs the bridge against the real
// process environment and returns the final value of every variable it set.
// An empty result with a nil error means minikube printed no exports or its
// driver does not support docker-env.
func applyDockerEnv(ctx context.Context) (*config.Config, []model.Assignment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	name, extraArgs, err := cfg.BridgeArgs()
	if err != nil {
		return nil, nil, err
	}

	rec := envbridge.NewRecordingSink(envbridge.OSSink{})
	bridge := envbridge.New(
		envbridge.WithCommand(name),
		envbridge.WithExtraArgs(extraArgs...),
		envbridge.WithSink(rec),
		envbridge.WithLogger(logger),
	)

	if err := bridge.BridgeDockerEnvironment(ctx); err != nil {
		var cmdErr *envbridge.CommandError
		if errors.As(err, &cmdErr) {
			return nil, nil, model.WrapCLIError(model.ExitCommandFailed,
				"failed to read minikube docker environment", err)
		}
		return nil, nil, model.WrapCLIError(model.ExitGeneralError,
			"failed to apply minikube docker environment", err)
	}

	applied := rec.Final()
	VerboseLog("applied %d docker environment variables", len(applied))
	return cfg, applied, nil
}
