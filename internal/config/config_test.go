package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"todoTracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// TestLoad_Defaults тестирует значения по умолчанию без файла
func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, config.RepositoryInMemory, cfg.Repository.Type)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Minute, cfg.Worker.Interval)
	assert.Equal(t, 100, cfg.Worker.BatchSize)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

// TestLoad_DotEnv тестирует подхват переменных из .env
func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TODO_SERVER_PORT=6060\n"), 0o600))

	// godotenv пишет в окружение процесса; t.Setenv вернёт прежнее значение после теста
	t.Setenv("TODO_SERVER_PORT", "")
	require.NoError(t, os.Unsetenv("TODO_SERVER_PORT"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}

// TestLoadFile тестирует чтение YAML
func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
  shutdown_timeout: 5s
database:
  url: postgres://u:p@localhost:5432/todo
  max_connections: 20
repository:
  type: postgres
cache:
  ttl: 30s
worker:
  interval: 1m
  batch_size: 50
`)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, config.RepositoryPostgres, cfg.Repository.Type)
	assert.Equal(t, int32(20), cfg.Database.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, time.Minute, cfg.Worker.Interval)
	assert.Equal(t, 50, cfg.Worker.BatchSize)
}

// TestLoadFile_EnvOverrides тестирует приоритет переменных окружения
func TestLoadFile_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
`)
	t.Setenv("TODO_SERVER_PORT", "7070")
	t.Setenv("TODO_CACHE_TTL", "2m")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
}

// TestLoadFile_Invalid тестирует отказ на неверном конфиге
func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown repository", "repository:\n  type: mongo\n"},
		{"postgres without url", "repository:\n  type: postgres\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"zero batch", "worker:\n  batch_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
}

// TestRedacted тестирует маскировку пароля в выводе конфига
func TestRedacted(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://todo:s3cret@db:5432/todo?sslmode=disable
repository:
  type: postgres
`)
	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	dump, err := cfg.Redacted()
	require.NoError(t, err)

	assert.NotContains(t, dump, "s3cret")
	assert.Contains(t, dump, "todo:xxxxx@db:5432")
	assert.Contains(t, dump, "port: 8080")
	assert.Contains(t, dump, "ttl: 1m0s")
	assert.Equal(t, "postgres://todo:s3cret@db:5432/todo?sslmode=disable", cfg.Database.URL)
}
