//go:build integration

// Package testinfra levanta contenedores reales (Postgres, MongoDB, Neo4j)
// para los tests de integración de los adapters.
//
// Uso:
//
//	go test -tags integration ./internal/adapters/storage/...
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

// SkipIfNoDocker saltea el test si no hay daemon de Docker.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !IsDockerAvailable() {
		t.Skip("skipping integration test: docker not available")
	}
}

// IsDockerAvailable corre `docker info` con timeout.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// CleanupContainer termina el contenedor; un error sólo se loguea.
func CleanupContainer(t *testing.T, container testcontainers.Container) {
	t.Helper()

	if container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := container.Terminate(ctx); err != nil {
		t.Logf("warning: failed to terminate container: %v", err)
	}
}
