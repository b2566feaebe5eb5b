package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helperClearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"TELEGRAM_API_TOKEN", "DATABASE_URL", "APP_ENV", "ENV", "QUIZZES_JSON_PATH", "BOT_WORKERS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	helperClearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, "assets/data/quizzes.json", cfg.QuizzesJSONPath)
	assert.Equal(t, 60, cfg.Bot.UpdateTimeout)
	assert.Equal(t, 8, cfg.Bot.Workers)
	assert.False(t, cfg.Bot.Debug)
	assert.Equal(t, 20, cfg.DB.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.DB.MaxConnLifetime)
	assert.False(t, cfg.DB.Enabled())
}

func TestLoadFrom_FileAndEnv(t *testing.T) {
	helperClearEnv(t)

	dir := t.TempDir()
	yaml := `
env: production
quizzes_json_path: /data/quizzes.json
bot:
  debug: true
  workers: 2
database:
  max_connections: 5
  max_conn_lifetime: 1m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")
	t.Setenv("QUIZZES_JSON_PATH", "/override/quizzes.json")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/override/quizzes.json", cfg.QuizzesJSONPath)
	assert.True(t, cfg.Bot.Debug)
	assert.Equal(t, 2, cfg.Bot.Workers)
	assert.Equal(t, 5, cfg.DB.MaxConnections)
	assert.Equal(t, time.Minute, cfg.DB.MaxConnLifetime)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://localhost/quiz", cfg.DB.URL)
}

func TestLoadFrom_MissingToken(t *testing.T) {
	helperClearEnv(t)

	_, err := LoadFrom(t.TempDir())
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoadFrom_BrokenFile(t *testing.T) {
	helperClearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("bot: [unclosed"), 0o600))

	_, err := LoadFrom(dir)
	require.Error(t, err)
}
