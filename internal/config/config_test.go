package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"CONFIG_FILE", "ENV", "LOG_LEVEL", "CRM_DATA_FILE", "TELEGRAM_TOKEN", "GOOGLE_AI_API_KEY",
	"AI_MODEL", "AI_TIMEOUT", "PANEL_ADDR", "BACKUP_DIR", "BACKUP_INTERVAL",
}

// clearEnv сбрасывает переменные и уводит рабочий каталог от возможного .env
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "crm_data.json", cfg.DataFile)
	assert.Equal(t, "gemini-2.0-flash", cfg.AIModel)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, ":8000", cfg.PanelAddr)
	assert.Equal(t, 24*time.Hour, cfg.BackupInterval)

	assert.Error(t, cfg.ValidateBot())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
data_file: /var/lib/crm/data.json
telegram_token: yaml-token
ai_timeout: 10s
panel_addr: ":9000"
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TELEGRAM_TOKEN", "env-token")
	t.Setenv("GOOGLE_AI_API_KEY", "key")
	t.Setenv("BACKUP_INTERVAL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "/var/lib/crm/data.json", cfg.DataFile)
	assert.Equal(t, "env-token", cfg.TelegramToken)
	assert.Equal(t, 10*time.Second, cfg.AITimeout)
	assert.Equal(t, ":9000", cfg.PanelAddr)
	assert.Equal(t, time.Hour, cfg.BackupInterval)
	assert.NoError(t, cfg.ValidateBot())
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: [unterminated"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
