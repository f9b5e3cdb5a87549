package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})

	return dir
}

func TestLoadWithoutEnvFile(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "student_ews", cfg.Database.Name)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := chdirTemp(t)

	contents := "API_PREFIX=/api/v2\nDB_NAME=ews_test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600))
	t.Cleanup(func() {
		// godotenv exports the file's entries into the process environment.
		_ = os.Unsetenv("API_PREFIX")
		_ = os.Unsetenv("DB_NAME")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v2", cfg.APIPrefix)
	assert.Equal(t, "ews_test", cfg.Database.Name)
}
