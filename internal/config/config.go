// Package config loads minikube-envbridge settings.
//
// Settings come from built-in defaults, optionally overridden by a YAML
// (.yaml/.yml) or JSONC (.json/.jsonc) file. JSONC files may contain
// comments and trailing commas; github.com/tidwall/jsonc strips them before
// the standard encoding/json decoder runs, the same way devcontainer.json
// files are usually read.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

const (
	// DefaultCommand is the companion executable.
	DefaultCommand = "minikube"

	// DefaultPingTimeout bounds the Docker daemon ping done by the "ping"
	// command. It does not apply to the bridge itself.
	DefaultPingTimeout = 5 * time.Second
)

// Config holds the bridge settings.
type Config struct {
	// Command is the companion command line. It is split with shell word
	// rules, so "minikube -p dev" or "'/opt/my tools/minikube'" both work.
	// The first word is the executable; the rest are placed before
	// "docker-env".
	Command string `yaml:"command" json:"command"`

	// Profile selects a minikube profile by adding "-p <profile>".
	Profile string `yaml:"profile" json:"profile"`

	// PingTimeout is a Go duration string, e.g. "5s".
	PingTimeout string `yaml:"pingTimeout" json:"pingTimeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Command:     DefaultCommand,
		PingTimeout: DefaultPingTimeout.String(),
	}
}

// Load reads the configuration file at path over the defaults.
// An empty path returns the defaults. Fields absent from the file keep
// their default values. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %q", path), err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return nil, model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", ext))
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse config file %q", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the command parses to at least one word and the
// ping timeout is a positive duration.
func (c *Config) Validate() error {
	if _, _, err := c.BridgeArgs(); err != nil {
		return err
	}
	if _, err := c.PingTimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// BridgeArgs splits Command into the executable and the arguments placed
// before "docker-env", appending "-p <profile>" when Profile is set.
func (c *Config) BridgeArgs() (string, []string, error) {
	words, err := shellwords.Parse(c.Command)
	if err != nil {
		return "", nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid command %q", c.Command), err)
	}
	if len(words) == 0 {
		return "", nil, model.NewCLIError(model.ExitConfigError, "command must not be empty")
	}

	args := words[1:]
	if c.Profile != "" {
		args = append(args, "-p", c.Profile)
	}
	return words[0], args, nil
}

// PingTimeoutDuration parses PingTimeout. An empty value means the default.
func (c *Config) PingTimeoutDuration() (time.Duration, error) {
	if c.PingTimeout == "" {
		return DefaultPingTimeout, nil
	}

	d, err := time.ParseDuration(c.PingTimeout)
	if err != nil {
		return 0, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid pingTimeout %q", c.PingTimeout), err)
	}
	if d <= 0 {
		return 0, model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("pingTimeout must be positive, got %q", c.PingTimeout))
	}
	return d, nil
}
