package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration int
		wantErr    string
	}{
		{name: "valid", secret: "test-secret-key", expiration: 24},
		{name: "minimum expiration", secret: "k", expiration: 1},
		{name: "missing secret", secret: "", expiration: 24, wantErr: "RESUME_EDITOR_JWT_SECRET is required"},
		{name: "zero expiration", secret: "k", expiration: 0, wantErr: "at least 1 hour"},
		{name: "negative expiration", secret: "k", expiration: -5, wantErr: "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewJWTConfig(tt.secret, tt.expiration)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.expiration, cfg.ExpirationHours)
		})
	}
}

func TestJWTConfig_Expiration(t *testing.T) {
	cfg, err := NewJWTConfig("k", 12)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cfg.Expiration())
}

func TestConfig_JWT(t *testing.T) {
	c := Config{JWTSecret: "abc", JWTExpirationHours: 2}
	jwtCfg, err := c.JWT()
	require.NoError(t, err)
	assert.Equal(t, "abc", jwtCfg.Secret)

	_, err = (&Config{JWTExpirationHours: 2}).JWT()
	assert.Error(t, err)
}
