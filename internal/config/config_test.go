package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir stands in for testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeFile(t, `
http:
  addr: ":9090"
storage:
  driver: memory
auth:
  jwt_secret: from-file
  token_ttl: 2h
events:
  workers: 2
`)
	t.Setenv("FOOD_JWT_SECRET", "from-env")
	t.Setenv("FOOD_STRICT_TRANSITIONS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, ":50051", cfg.GRPC.Addr)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 2, cfg.Events.Workers)
	assert.Equal(t, 1024, cfg.Events.QueueSize)
	assert.True(t, cfg.Orders.StrictTransitions)
	assert.Equal(t, "INR", cfg.Payments.Currency)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FOOD_JWT_SECRET=dotenv\nFOOD_STORAGE_DRIVER=memory\n"), 0o600))
	// godotenv does not override variables that are already set.
	os.Unsetenv("FOOD_JWT_SECRET")
	os.Unsetenv("FOOD_STORAGE_DRIVER")
	t.Cleanup(func() {
		os.Unsetenv("FOOD_JWT_SECRET")
		os.Unsetenv("FOOD_STORAGE_DRIVER")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.Auth.JWTSecret)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoad_InvalidBool(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FOOD_JWT_SECRET", "x")
	t.Setenv("FOOD_TELEMETRY_ENABLED", "maybe")

	_, err := Load("")
	assert.ErrorContains(t, err, "FOOD_TELEMETRY_ENABLED")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "sqlite"
	cfg.Events.Workers = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "jwt_secret")
	assert.ErrorContains(t, err, "sqlite")
	assert.ErrorContains(t, err, "events.workers")
	assert.ErrorContains(t, err, "log.level")

	cfg = Default()
	cfg.Auth.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
}
