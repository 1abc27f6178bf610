package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// writeConfig writes content to name inside a temp dir and returns the path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// requireExitCode asserts that err is a CLIError with the given code.
func requireExitCode(t *testing.T, err error, code model.ExitCode) {
	t.Helper()

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected *model.CLIError, got %T", err)
	assert.Equal(t, code, cliErr.Code)
}

// TestLoad_Defaults verifies that an empty path yields the defaults.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "minikube", cfg.Command)
	assert.Empty(t, cfg.Profile)

	d, err := cfg.PingTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	name, args, err := cfg.BridgeArgs()
	require.NoError(t, err)
	assert.Equal(t, "minikube", name)
	assert.Empty(t, args)
}

// TestLoad_YAML verifies YAML parsing and that absent fields keep defaults.
func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "envbridge.yaml", `
profile: dev
pingTimeout: 10s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "minikube", cfg.Command, "command should keep its default")
	assert.Equal(t, "dev", cfg.Profile)

	d, err := cfg.PingTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)

	name, args, err := cfg.BridgeArgs()
	require.NoError(t, err)
	assert.Equal(t, "minikube", name)
	assert.Equal(t, []string{"-p", "dev"}, args)
}

// TestLoad_JSONC verifies comments and trailing commas are accepted.
func TestLoad_JSONC(t *testing.T) {
	path := writeConfig(t, "envbridge.jsonc", `{
  // use a pinned minikube build
  "command": "'/opt/my tools/minikube' --alsologtostderr=false",
  "pingTimeout": "2s", /* short */
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	name, args, err := cfg.BridgeArgs()
	require.NoError(t, err)
	assert.Equal(t, "/opt/my tools/minikube", name)
	assert.Equal(t, []string{"--alsologtostderr=false"}, args)
}

// TestLoad_Errors covers every configuration failure mode. All of them map
// to ExitConfigError.
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad extension", "envbridge.toml", `command = "minikube"`},
		{"bad yaml", "envbridge.yaml", "command: [unterminated"},
		{"bad json", "envbridge.json", `{"command": }`},
		{"empty command", "envbridge.yaml", `command: "  "`},
		{"unbalanced quotes", "envbridge.yaml", `command: "'minikube"`},
		{"bad duration", "envbridge.yaml", `pingTimeout: soon`},
		{"zero duration", "envbridge.yaml", `pingTimeout: 0s`},
		{"negative duration", "envbridge.json", `{"pingTimeout": "-1s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)

			cfg, err := Load(path)
			assert.Nil(t, cfg)
			require.Error(t, err)
			requireExitCode(t, err, model.ExitConfigError)
		})
	}
}

// TestLoad_MissingFile verifies a missing file is a config error, not a
// silent fallback to defaults.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	requireExitCode(t, err, model.ExitConfigError)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestBridgeArgs_CommandAndProfile verifies that command words come before
// the profile flag.
func TestBridgeArgs_CommandAndProfile(t *testing.T) {
	cfg := &Config{Command: "minikube --v=1", Profile: "ci"}

	name, args, err := cfg.BridgeArgs()
	require.NoError(t, err)
	assert.Equal(t, "minikube", name)
	assert.Equal(t, []string{"--v=1", "-p", "ci"}, args)
}
