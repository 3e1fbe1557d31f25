package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/types"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/users.json", cfg.UsersFile)
	assert.Equal(t, 60*time.Second, cfg.RenderServiceTimeout)
	assert.True(t, cfg.BuiltinRenderService)
	assert.Equal(t, "classic", cfg.DefaultTemplate)
	assert.Equal(t, "blue", cfg.DefaultPalette)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("RESUME_EDITOR_PORT", "9090")
	t.Setenv("RESUME_EDITOR_RENDER_SERVICE_URL", "http://render:3000")
	t.Setenv("RESUME_EDITOR_SESSION_TTL", "30m")
	t.Setenv("RESUME_EDITOR_BUILTIN_RENDER_SERVICE", "false")
	t.Setenv("RESUME_EDITOR_DEFAULT_PALETTE", "purple")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://render:3000", cfg.RenderServiceURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.BuiltinRenderService)
	assert.Equal(t, types.PalettePurple, cfg.Style().ColorPalette)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("RESUME_EDITOR_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 3000,
		"render_service_url": "https://render.example.com",
		"default_template": "technical",
		"history_limit": 25
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "https://render.example.com", cfg.RenderServiceURL)
	assert.Equal(t, "technical", cfg.DefaultTemplate)
	assert.Equal(t, 25, cfg.HistoryLimit)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "port: 4000\nsession_ttl: 2h\ndefault_palette: green\nlog_pretty: true\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "green", cfg.DefaultPalette)
	assert.True(t, cfg.LogPretty)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("port: [1, 2"), 0644))

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func validConfig() Config {
	return Config{
		Port:            8080,
		HistoryLimit:    10,
		SessionTTL:      time.Hour,
		DefaultTemplate: "classic",
		DefaultPalette:  "blue",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "port"},
		{name: "negative history", mutate: func(c *Config) { c.HistoryLimit = -1 }, wantErr: "history_limit"},
		{name: "negative ttl", mutate: func(c *Config) { c.SessionTTL = -time.Second }, wantErr: "session_ttl"},
		{name: "unknown template", mutate: func(c *Config) { c.DefaultTemplate = "modern" }, wantErr: "unknown template"},
		{name: "unknown palette", mutate: func(c *Config) { c.DefaultPalette = "orange" }, wantErr: "unknown palette"},
		{name: "bad render url", mutate: func(c *Config) { c.RenderServiceURL = "render:3000" }, wantErr: "render_service_url"},
		{name: "https render url", mutate: func(c *Config) { c.RenderServiceURL = "https://render" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	file := Config{Port: 3000, DefaultTemplate: "executive"}
	env := Config{
		Port:                 8080,
		UsersFile:            "users.json",
		DefaultTemplate:      "classic",
		DefaultPalette:       "blue",
		HistoryLimit:         100,
		BuiltinRenderService: true,
		JWTSecret:            "s3cret",
	}

	merged := file.MergeWithDefaults(env)

	assert.Equal(t, 3000, merged.Port, "file value wins")
	assert.Equal(t, "executive", merged.DefaultTemplate)
	assert.Equal(t, "users.json", merged.UsersFile, "unset file key keeps env value")
	assert.Equal(t, "blue", merged.DefaultPalette)
	assert.Equal(t, 100, merged.HistoryLimit)
	assert.True(t, merged.BuiltinRenderService)
	assert.Equal(t, "s3cret", merged.JWTSecret)
	assert.Equal(t, 0, file.HistoryLimit, "receiver is not modified")
}
