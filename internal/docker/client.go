package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// DefaultPingTimeout is the maximum duration to wait for a Docker daemon
// response during a Ping operation when the caller passes zero.
const DefaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client.
//
// Usage:
//
//	c, err := docker.NewClientFromEnv()
//	if err != nil { /* handle */ }
//	defer c.Close()
//	if err := c.Ping(ctx, 0); err != nil { /* daemon not reachable */ }
type Client struct {
	inner *client.Client
	host  string
}

// DaemonInfo summarises the daemon a Client is connected to.
type DaemonInfo struct {
	Host          string `json:"host"`
	APIVersion    string `json:"apiVersion"`
	ServerVersion string `json:"serverVersion"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
}

// NewClientFromEnv creates a Docker client from the process environment.
//
// The connection is chosen in this order:
//  1. DOCKER_HOST (with DOCKER_TLS_VERIFY / DOCKER_CERT_PATH /
//     DOCKER_API_VERSION applied by client.FromEnv)
//  2. Platform-specific default socket paths:
//     - Linux: /var/run/docker.sock
//     - macOS: /var/run/docker.sock, then ~/.docker/run/docker.sock
//     - Windows: npipe:////./pipe/docker_engine
//
// Returns a model.CLIError with ExitDockerNotRunning if no daemon address
// can be determined or the client cannot be created.
func NewClientFromEnv() (*Client, error) {
	if host := os.Getenv(client.EnvOverrideHost); host != "" {
		c, err := client.NewClientWithOpts(
			client.FromEnv,
			client.WithAPIVersionNegotiation(),
		)
		if err != nil {
			return nil, model.WrapCLIError(
				model.ExitDockerNotRunning,
				fmt.Sprintf("failed to create Docker client for host %q", host),
				err,
			)
		}
		return &Client{inner: c, host: c.DaemonHost()}, nil
	}

	host, err := detectDockerHost()
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"Docker socket not found",
			err,
		)
	}
	return newClientWithHost(host)
}

// newClientWithHost creates a Docker client connected to the specified host,
// e.g. "unix:///var/run/docker.sock" or "tcp://192.168.49.2:2376".
func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}

	return &Client{inner: c, host: host}, nil
}

// detectDockerHost determines the Docker socket path for the current platform.
// It probes known socket paths and returns the first one that exists.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
		})

	case "darwin":
		// Newer Docker Desktop versions may only create the socket under
		// the home directory.
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return detectUnixSocket([]string{
				"/var/run/docker.sock",
			})
		}
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
			homeDir + "/.docker/run/docker.sock",
		})

	case "windows":
		// os.Stat does not work on named pipes, so probe with a brief dial.
		pipePath := `//./pipe/docker_engine`
		conn, err := net.DialTimeout("pipe", pipePath, 1*time.Second)
		if err == nil {
			conn.Close()
			return "npipe://" + pipePath, nil
		}
		return "", fmt.Errorf("Docker named pipe not found at %s: %w", pipePath, err)

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket returns the Docker host URI for the first path in paths
// that exists on the filesystem.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf(
		"Docker socket not found at any of: %v (is Docker running?)",
		paths,
	)
}

// Host returns the daemon address the client was created for.
func (c *Client) Host() string {
	return c.host
}

// Ping verifies that the Docker daemon is reachable and responsive,
// waiting at most timeout (DefaultPingTimeout when zero).
//
// Returns a model.CLIError with ExitDockerNotRunning if the daemon
// does not respond or returns an error.
func (c *Client) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := c.inner.Ping(pingCtx)
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("Docker daemon at %s is not responding", c.host),
			err,
		)
	}
	return nil
}

// Info queries the daemon version. It is used by the "ping" command to show
// which daemon (host Docker or minikube's) the environment points at.
func (c *Client) Info(ctx context.Context) (*DaemonInfo, error) {
	v, err := c.inner.ServerVersion(ctx)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to query Docker daemon version at %s", c.host),
			err,
		)
	}

	return &DaemonInfo{
		Host:          c.host,
		APIVersion:    v.APIVersion,
		ServerVersion: v.Version,
		OS:            v.Os,
		Arch:          v.Arch,
	}, nil
}

// Close releases all resources held by the Docker client.
// Close is safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}
