// Package envbridge points the current process at minikube's Docker daemon.
//
// minikube only exposes the connection settings of its in-VM Docker daemon
// (DOCKER_HOST, DOCKER_TLS_VERIFY, DOCKER_CERT_PATH, ...) through
// `minikube docker-env --shell=bash`, which prints shell export statements.
// This package runs that command, parses the `export NAME="VALUE"` lines and
// writes each pair into the process environment so that Docker clients
// created afterwards, and subprocesses spawned afterwards, talk to the VM.
//
// The flow for one call is:
//
//	Runner.Run ──► Classify ──► apply ──► ParseExports ──► Sink.Setenv (per line)
//	                   ├──────► suppress ──► return nil
//	                   └──────► propagate ──► return *CommandError
//
// All process-environment writes go through the Sink interface. OSSink
// writes to the real environment; MapSink keeps an in-memory copy for tests.
// No locking is done around OSSink: the environment is expected to be
// bridged once, early, before concurrent workers start reading it.
package envbridge
