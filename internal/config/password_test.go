package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		pepper  string
		wantErr bool
	}{
		{name: "valid cost", cost: 12},
		{name: "boundary cost 10", cost: 10},
		{name: "boundary cost 14", cost: 14},
		{name: "with pepper", cost: 12, pepper: "test-pepper"},
		{name: "cost too low", cost: 9, wantErr: true},
		{name: "cost too high", cost: 15, wantErr: true},
		{name: "zero cost", cost: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewPasswordConfig(tt.cost, tt.pepper)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	tests := []struct {
		name     string
		pepper   string
		password string
	}{
		{name: "no pepper", password: "password123"},
		{name: "with pepper", pepper: "pepper", password: "password123"},
		{name: "unicode", password: "pässwörd-日本"},
		{name: "empty password", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewPasswordConfig(10, tt.pepper)
			require.NoError(t, err)

			hash, err := cfg.HashPassword(tt.password)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$10$"))
			assert.NotEqual(t, tt.password, hash)

			assert.True(t, cfg.VerifyPassword(tt.password, hash))
			assert.False(t, cfg.VerifyPassword(tt.password+"x", hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	cfg, err := NewPasswordConfig(10, "")
	require.NoError(t, err)

	a, err := cfg.HashPassword("same")
	require.NoError(t, err)
	b, err := cfg.HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_PepperMismatch(t *testing.T) {
	withPepper, err := NewPasswordConfig(10, "pepper-a")
	require.NoError(t, err)
	otherPepper, err := NewPasswordConfig(10, "pepper-b")
	require.NoError(t, err)

	hash, err := withPepper.HashPassword("password")
	require.NoError(t, err)
	assert.False(t, otherPepper.VerifyPassword("password", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cfg, err := NewPasswordConfig(10, "")
	require.NoError(t, err)
	assert.False(t, cfg.VerifyPassword("password", "not-a-hash"))
}
