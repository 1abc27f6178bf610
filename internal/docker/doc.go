// Package docker provides Docker Engine API access for the
// minikube-envbridge CLI.
//
// This package handles:
//   - Docker client initialization from the (bridged) process environment,
//     falling back to automatic socket detection (Linux, macOS, Windows)
//   - Daemon reachability checks (Ping) and version queries (Info)
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
