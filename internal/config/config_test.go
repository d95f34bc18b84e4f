package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "SERVER_HOST", "SERVER_PORT", "SERVER_ENV",
		"STORAGE_TYPE", "STORAGE_BASE_PATH", "FOLDER_ID",
		"GOOGLE_SERVICE_ACCOUNT_JSON", "SERVICE_ACCOUNT_FILE",
		"DRIVE_TIMEOUT", "MAX_MB",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOLDER_ID", "1AbC_dEf-123")
	t.Setenv("MAX_MB", "250")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DRIVE_TIMEOUT", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1AbC_dEf-123", cfg.Drive.FolderID)
	assert.Equal(t, 250, cfg.Upload.MaxFileMB)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Drive.Timeout)
	assert.Equal(t, "drive", cfg.Storage.Type)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOLDER_ID", "folder123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultMaxFileMB, cfg.Upload.MaxFileMB)
	assert.Equal(t, defaultMaxFiles, cfg.Upload.MaxFiles)
	assert.Equal(t, defaultDriveTimeout, cfg.Drive.Timeout)
	assert.Equal(t, "service_account.json", cfg.Drive.ServiceAccountFile)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadRefusesMissingFolderID(t *testing.T) {
	clearEnv(t)

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOLDER_ID")
}

func TestLoadLocalStorageNeedsNoFolderID(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_TYPE", "local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoadExplicitConfigPathMustExist(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("FOLDER_ID", "folder123")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoadRejectsMalformedEnvValues(t *testing.T) {
	cases := map[string]string{
		"SERVER_PORT":   "eighty",
		"DRIVE_TIMEOUT": "soon",
		"MAX_MB":        "lots",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("FOLDER_ID", "folder123")
			t.Setenv(key, value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadRejectsMalformedYamlTimeout(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
drive:
  folder_id: folder123
  timeout: whenever
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "whenever")
}

func TestLoadYamlFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 4000
  env: production
drive:
  folder_id: from-yaml
upload:
  max_file_mb: 100
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("FOLDER_ID", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, 100, cfg.Upload.MaxFileMB)
	assert.Equal(t, "from-env", cfg.Drive.FolderID, "environment must win over the file")
}
