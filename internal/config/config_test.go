package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MAL_USER", "johndoe")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ALGORITHM", "HS256")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "johndoe", cfg.SourceUser)
	assert.Equal(t, []byte("test-secret"), cfg.JWTSecret)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, defaultDBPath, cfg.DBPath)
	assert.Equal(t, defaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"MAL_USER", "JWT_SECRET", "JWT_ALGORITHM"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadBadAlgorithm(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ALGORITHM", "RS256")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("TOKEN_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
}

func TestLoadBadTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL_MINUTES", "zero")
	_, err := Load()
	require.Error(t, err)
}
