// Package config provides configuration loading and validation for the
// editor server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-editor/internal/types"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RESUME_EDITOR"

// Config represents the server and CLI configuration. Values come from the
// environment and may be overlaid by a JSON or YAML file.
type Config struct {
	// Server
	Port      int    `json:"port,omitempty" yaml:"port,omitempty" envconfig:"PORT" default:"8080"`
	UsersFile string `json:"users_file,omitempty" yaml:"users_file,omitempty" envconfig:"USERS_FILE" default:"data/users.json"`
	// DatabaseURL selects the PostgreSQL user directory over the users file.
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty" envconfig:"DATABASE_URL"`

	// Export
	RenderServiceURL     string        `json:"render_service_url,omitempty" yaml:"render_service_url,omitempty" envconfig:"RENDER_SERVICE_URL"`
	RenderServiceTimeout time.Duration `json:"render_service_timeout,omitempty" yaml:"render_service_timeout,omitempty" envconfig:"RENDER_SERVICE_TIMEOUT" default:"60s"`
	BuiltinRenderService bool          `json:"builtin_render_service,omitempty" yaml:"builtin_render_service,omitempty" envconfig:"BUILTIN_RENDER_SERVICE" default:"true"`
	ChromePath           string        `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty" envconfig:"CHROME_PATH"`

	// AI
	GeminiAPIKey string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty" envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `json:"gemini_model,omitempty" yaml:"gemini_model,omitempty" envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// Editing
	DefaultTemplate string        `json:"default_template,omitempty" yaml:"default_template,omitempty" envconfig:"DEFAULT_TEMPLATE" default:"classic"`
	DefaultPalette  string        `json:"default_palette,omitempty" yaml:"default_palette,omitempty" envconfig:"DEFAULT_PALETTE" default:"blue"`
	HistoryLimit    int           `json:"history_limit,omitempty" yaml:"history_limit,omitempty" envconfig:"HISTORY_LIMIT" default:"100"`
	SessionTTL      time.Duration `json:"session_ttl,omitempty" yaml:"session_ttl,omitempty" envconfig:"SESSION_TTL" default:"12h"`

	// Auth
	JWTSecret          string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty" envconfig:"JWT_SECRET"`
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty" yaml:"jwt_expiration_hours,omitempty" envconfig:"JWT_EXPIRATION_HOURS" default:"12"`
	BcryptCost         int    `json:"bcrypt_cost,omitempty" yaml:"bcrypt_cost,omitempty" envconfig:"BCRYPT_COST" default:"12"`
	PasswordPepper     string `json:"password_pepper,omitempty" yaml:"password_pepper,omitempty" envconfig:"PASSWORD_PEPPER"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `json:"log_pretty,omitempty" yaml:"log_pretty,omitempty" envconfig:"LOG_PRETTY"`
}

// Load reads the configuration from RESUME_EDITOR_* environment variables,
// applying defaults for unset keys. Unprefixed names such as DATABASE_URL or
// CHROME_PATH are used when the prefixed variable is absent.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension (.yaml/.yml, anything else is JSON).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config error: 'history_limit' must be non-negative")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("config error: 'session_ttl' must be non-negative")
	}
	if c.RenderServiceTimeout < 0 {
		return fmt.Errorf("config error: 'render_service_timeout' must be non-negative")
	}
	if c.DefaultTemplate != "" && !types.Template(c.DefaultTemplate).Valid() {
		return fmt.Errorf("config error: unknown template %q", c.DefaultTemplate)
	}
	if c.DefaultPalette != "" && !types.ColorPalette(c.DefaultPalette).Valid() {
		return fmt.Errorf("config error: unknown palette %q", c.DefaultPalette)
	}
	if c.RenderServiceURL != "" && !strings.HasPrefix(c.RenderServiceURL, "http://") && !strings.HasPrefix(c.RenderServiceURL, "https://") {
		return fmt.Errorf("config error: 'render_service_url' must be an http(s) URL")
	}
	return nil
}

// Style returns the configured default style.
func (c *Config) Style() types.StyleOptions {
	return types.StyleOptions{
		Template:     types.Template(c.DefaultTemplate),
		ColorPalette: types.ColorPalette(c.DefaultPalette),
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// A file config is merged over the environment config this way so that file
// values win and unset file keys keep their environment value.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UsersFile == "" {
		result.UsersFile = defaults.UsersFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RenderServiceURL == "" {
		result.RenderServiceURL = defaults.RenderServiceURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if result.DefaultPalette == "" {
		result.DefaultPalette = defaults.DefaultPalette
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.PasswordPepper == "" {
		result.PasswordPepper = defaults.PasswordPepper
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}
	if result.SessionTTL == 0 {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.RenderServiceTimeout == 0 {
		result.RenderServiceTimeout = defaults.RenderServiceTimeout
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}
	if result.BcryptCost == 0 {
		result.BcryptCost = defaults.BcryptCost
	}

	// Bool fields: a file cannot switch these off, so true from either side wins
	result.BuiltinRenderService = result.BuiltinRenderService || defaults.BuiltinRenderService
	result.LogPretty = result.LogPretty || defaults.LogPretty

	return result
}
