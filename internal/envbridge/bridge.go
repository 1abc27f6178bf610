package envbridge

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
	"github.com/shinji-kodama/minikube-envbridge/internal/runner"
)

// DefaultCommand is the companion executable looked up on PATH.
const DefaultCommand = "minikube"

// dockerEnvArgs select bash-syntax docker-env output.
var dockerEnvArgs = []string{"docker-env", "--shell=bash"}

// Bridge runs the companion command and applies its exports to a Sink.
//
// A Bridge holds no per-call state; calling BridgeDockerEnvironment twice
// with identical command output leaves the sink in the same state as
// calling it once.
type Bridge struct {
	command   string
	extraArgs []string
	runner    runner.Runner
	sink      Sink
	log       logrus.FieldLogger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithCommand overrides the companion executable (default "minikube").
func WithCommand(name string) Option {
	return func(b *Bridge) { b.command = name }
}

// WithExtraArgs adds arguments placed before "docker-env", e.g.
// []string{"-p", "dev"} to select a minikube profile.
func WithExtraArgs(args ...string) Option {
	return func(b *Bridge) { b.extraArgs = append([]string(nil), args...) }
}

// WithRunner replaces the process runner.
func WithRunner(r runner.Runner) Option {
	return func(b *Bridge) { b.runner = r }
}

// WithSink replaces the environment sink.
func WithSink(s Sink) Option {
	return func(b *Bridge) { b.sink = s }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Bridge) { b.log = l }
}

// New creates a Bridge. Without options it runs `minikube docker-env
// --shell=bash` through an ExecRunner and writes to the real process
// environment.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		command: DefaultCommand,
		runner:  runner.NewExecRunner(),
		sink:    OSSink{},
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BridgeDockerEnvironment points the process environment at the companion
// tool's Docker daemon using the default Bridge.
func BridgeDockerEnvironment(ctx context.Context) error {
	return New().BridgeDockerEnvironment(ctx)
}

// BridgeDockerEnvironment runs the companion command, waits for it to exit,
// and writes every export it prints into the sink.
//
// It returns nil when the exports were applied, and also when the command
// failed because the active driver does not support docker-env (nothing is
// written in that case). Any other failure is returned as a *CommandError
// before anything is written. No timeout is applied; cancel ctx to bound it.
func (b *Bridge) BridgeDockerEnvironment(ctx context.Context) error {
	args := b.args()
	log := b.log.WithField("command", b.command)
	log.WithField("args", args).Debug("running docker-env")

	result, err := b.runner.Run(ctx, b.command, args...)

	switch Classify(result, err) {
	case model.DispositionSuppress:
		log.Debug("driver does not support docker-env, leaving environment unchanged")
		return nil
	case model.DispositionPropagate:
		return &CommandError{
			Name:     b.command,
			Args:     args,
			Stderr:   result.Stderr,
			ExitCode: result.ExitCode,
			Err:      err,
		}
	}

	assignments := ParseExports(result.Stdout)
	for _, a := range assignments {
		if err := b.sink.Setenv(a.Key, a.Value); err != nil {
			return fmt.Errorf("failed to set %s: %w", a.Key, err)
		}
		log.WithField("key", a.Key).Debug("set environment variable")
	}
	log.WithField("count", len(assignments)).Debug("docker environment applied")

	return nil
}

// args builds extraArgs followed by the docker-env arguments.
func (b *Bridge) args() []string {
	args := make([]string, 0, len(b.extraArgs)+len(dockerEnvArgs))
	args = append(args, b.extraArgs...)
	return append(args, dockerEnvArgs...)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
