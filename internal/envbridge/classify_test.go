package envbridge

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// TestClassify checks the three-way decision in isolation from any runner.
func TestClassify(t *testing.T) {
	failure := errors.New("exit status 1")

	tests := []struct {
		name   string
		result model.CommandResult
		err    error
		want   model.Disposition
	}{
		{
			name:   "success",
			result: model.CommandResult{Stdout: `export A="1"`},
			want:   model.DispositionApply,
		},
		{
			name:   "success ignores stderr",
			result: model.CommandResult{Stderr: "driver does not support docker-env"},
			want:   model.DispositionApply,
		},
		{
			name:   "unsupported driver",
			result: model.CommandResult{Stderr: "Error: driver does not support docker-env", ExitCode: 1},
			err:    failure,
			want:   model.DispositionSuppress,
		},
		{
			name:   "unsupported driver in longer output",
			result: model.CommandResult{Stderr: "X Exiting due to MK_USAGE: The none driver does not support multi-node clusters.\n", ExitCode: 14},
			err:    failure,
			want:   model.DispositionSuppress,
		},
		{
			name:   "generic failure",
			result: model.CommandResult{Stderr: "exit status 1: command not found", ExitCode: 1},
			err:    failure,
			want:   model.DispositionPropagate,
		},
		{
			name:   "different wording is not recognised",
			result: model.CommandResult{Stderr: "docker-env is unsupported by this driver", ExitCode: 1},
			err:    failure,
			want:   model.DispositionPropagate,
		},
		{
			name:   "missing binary",
			result: model.CommandResult{ExitCode: -1},
			err:    exec.ErrNotFound,
			want:   model.DispositionPropagate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.result, tt.err))
		})
	}
}

// TestCommandError verifies the message format and that the runner error
// stays reachable through errors.Is.
func TestCommandError(t *testing.T) {
	t.Run("with stderr", func(t *testing.T) {
		inner := errors.New("exit status 1")
		err := &CommandError{
			Name:     "minikube",
			Args:     []string{"docker-env", "--shell=bash"},
			Stderr:   "  something broke\n",
			ExitCode: 1,
			Err:      inner,
		}

		assert.Equal(t, "minikube docker-env --shell=bash failed: exit status 1: something broke", err.Error())
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("without stderr", func(t *testing.T) {
		err := &CommandError{Name: "minikube", Args: []string{"docker-env"}, ExitCode: -1, Err: exec.ErrNotFound}

		assert.Equal(t, "minikube docker-env failed: "+exec.ErrNotFound.Error(), err.Error())
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})
}
