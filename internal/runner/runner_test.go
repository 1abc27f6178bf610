package runner

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// requireShell skips the test when no POSIX shell is available. The
// ExecRunner tests use "sh -c" to produce deterministic stdout, stderr
// and exit codes without depending on minikube being installed.
func requireShell(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("sh is not available on Windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
}

// TestExecRunner_Success verifies that stdout and stderr are captured
// separately and that a zero exit yields a nil error.
func TestExecRunner_Success(t *testing.T) {
	requireShell(t)

	r := NewExecRunner()
	result, err := r.Run(context.Background(), "sh", "-c", `echo 'export A="1"'; echo warn >&2`)
	require.NoError(t, err)

	assert.Equal(t, "export A=\"1\"\n", result.Stdout)
	assert.Equal(t, "warn\n", result.Stderr)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.Success())
}

// TestExecRunner_NonZeroExit verifies that a failing command still
// returns its captured output together with the exit code.
func TestExecRunner_NonZeroExit(t *testing.T) {
	requireShell(t)

	r := NewExecRunner()
	result, err := r.Run(context.Background(), "sh", "-c", "echo 'driver does not support docker-env' >&2; exit 3")
	require.Error(t, err)

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr), "error should be an *exec.ExitError")
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Stderr, "driver does not support")
	assert.Empty(t, result.Stdout)
}

// TestExecRunner_MissingBinary verifies the "never started" case: the exit
// code is -1 and the error matches exec.ErrNotFound.
func TestExecRunner_MissingBinary(t *testing.T) {
	r := NewExecRunner()
	result, err := r.Run(context.Background(), "minikube-envbridge-definitely-not-installed", "docker-env")
	require.Error(t, err)

	assert.True(t, errors.Is(err, exec.ErrNotFound))
	assert.Equal(t, -1, result.ExitCode)
	assert.Empty(t, result.Stderr)
}

// TestExecRunner_ContextCancelled verifies that an already-cancelled
// context prevents the command from running.
func TestExecRunner_ContextCancelled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner()
	result, err := r.Run(ctx, "sh", "-c", "echo never")
	require.Error(t, err)
	assert.False(t, result.Success())
	assert.Empty(t, result.Stdout)
}

// TestStaticRunner verifies that the test double returns its canned values
// and records every call with its own copy of the args.
func TestStaticRunner(t *testing.T) {
	canned := model.CommandResult{Stdout: "export A=\"1\"\n"}
	r := &StaticRunner{Result: canned}

	args := []string{"docker-env", "--shell=bash"}
	result, err := r.Run(context.Background(), "minikube", args...)
	require.NoError(t, err)
	assert.Equal(t, canned, result)

	// Mutating the caller's slice must not change the recorded call.
	args[0] = "mutated"

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "minikube", calls[0].Name)
	assert.Equal(t, []string{"docker-env", "--shell=bash"}, calls[0].Args)
	assert.Equal(t, "minikube docker-env --shell=bash", calls[0].String())
}
