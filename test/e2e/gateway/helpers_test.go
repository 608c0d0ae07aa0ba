package gateway_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for gateway end-to-end tests.
 * Each test stack is a private Docker network holding a fakemarket backend
 * and a gateway pointed at it; tests talk to the gateway's mapped port.
 */

const (
	gatewayImageName    = "unimarket-gateway-test:latest"
	fakemarketImageName = "unimarket-fakemarket-test:latest"

	// Seeded by fakemarket at startup.
	seededEmail    = "student@uni.edu"
	seededPassword = "password123"
)

// TestMain builds both Docker images once before all tests and cleans them
// up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building gateway Docker images...")
	if err := buildDockerImages(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker images: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up gateway Docker images...")
	cleanupDockerImages()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImages() error {
	ctx := context.Background()

	for image, dockerfile := range map[string]string{
		gatewayImageName:    "../../../cmd/gateway/Dockerfile",
		fakemarketImageName: "../../../cmd/fakemarket/Dockerfile",
	} {
		cmd := exec.CommandContext(ctx, "docker", "build",
			"-t", image,
			"-f", dockerfile,
			"../../../")
		cmd.Dir = "."
		cmd.Stdout = os.Stdout
		cmd.Stderr = nil
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("building %s: %w", image, err)
		}
	}
	return nil
}

func cleanupDockerImages() {
	ctx := context.Background()
	for _, image := range []string{gatewayImageName, fakemarketImageName} {
		cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", image)
		_ = cmd.Run() // Ignore errors - image might not exist
	}
}

// setupStack starts fakemarket and the gateway on a shared network and
// returns the gateway's base URL.
func setupStack(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	net, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := net.Remove(ctx); err != nil {
			t.Logf("failed to remove network: %v", err)
		}
	})

	backend, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        fakemarketImageName,
			ExposedPorts: []string{"4000/tcp"},
			Networks:     []string{net.Name},
			NetworkAliases: map[string][]string{
				net.Name: {"fakemarket"},
			},
			WaitingFor: wait.ForListeningPort("4000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := backend.Terminate(ctx); err != nil {
			t.Logf("failed to terminate fakemarket: %v", err)
		}
	})

	gateway, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        gatewayImageName,
			ExposedPorts: []string{"8080/tcp"},
			Networks:     []string{net.Name},
			Env: map[string]string{
				"BACKEND_URL":   "http://fakemarket:4000",
				"FRONTEND_URL":  "http://frontend.test",
				"DATABASE_FILE": "/gateway.db",
				"ENV":           "test",
				"LOG_LEVEL":     "info",
				"LOG_FORMAT":    "json",
				// Relaxed limits so rapid test requests don't trip them
				"RATELIMIT_STRICT_REQUESTS":  "1000",
				"RATELIMIT_STRICT_BURST":     "1000",
				"RATELIMIT_LENIENT_REQUESTS": "1000",
				"RATELIMIT_LENIENT_BURST":    "1000",
			},
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := gateway.Terminate(ctx); err != nil {
			t.Logf("failed to terminate gateway: %v", err)
		}
	})

	mappedPort, err := gateway.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := gateway.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}
