package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viron.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":3350", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/oas", cfg.Viron.OASPath)
	assert.Equal(t, "/authentication", cfg.Viron.AuthPath)
	assert.Equal(t, "", cfg.Viron.Pages)
	assert.Equal(t, []string{"https://viron.plus", "https://local.viron.work:8000"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.True(t, cfg.MetricsEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
listen: 127.0.0.1:8080
log_level: debug
viron:
  oas_path: /viron/oas
  pages: pages.yaml
cors:
  allow_origins: [http://localhost:8000]
metrics_path: "-"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "/viron/oas", cfg.Viron.OASPath)
	assert.Equal(t, "/authentication", cfg.Viron.AuthPath, "expected default for unset field")
	assert.Equal(t, "pages.yaml", cfg.Viron.Pages)
	assert.Equal(t, []string{"http://localhost:8000"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.MetricsEnabled())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"syntax", "listen: [", "parsing config"},
		{"relative path", "viron:\n  oas_path: oas\n", "viron.oas_path must start with /"},
		{"same paths", "viron:\n  oas_path: /x\n  auth_path: /x\n", "must differ"},
		{"metrics path", "metrics_path: metrics\n", "metrics_path must start with /"},
		{"log level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")
}
