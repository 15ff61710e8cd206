package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	withDotenv(t, filepath.Join(t.TempDir(), "missing.env"))

	t.Setenv("DATABASE_URI", "memory://")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_TTL", "45m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("ALLOW_UNSCOPED_HISTORY", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "memory://", cfg.DatabaseDSN)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AllowUnscopedHistory)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel, "unset variables keep prior value")
}

func TestParseEnv_LegacyNames(t *testing.T) {
	withDotenv(t, filepath.Join(t.TempDir(), "missing.env"))

	t.Setenv("PORT", "8081")
	t.Setenv("MONGO_URI", "mongodb://db:27017/chat")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "mongodb://db:27017/chat", cfg.DatabaseDSN)
}

func TestParseEnv_DatabaseURIWinsOverMongoURI(t *testing.T) {
	withDotenv(t, filepath.Join(t.TempDir(), "missing.env"))

	t.Setenv("MONGO_URI", "mongodb://legacy:27017/chat")
	t.Setenv("DATABASE_URI", "postgres://new/chat")

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "postgres://new/chat", cfg.DatabaseDSN)
}

func TestParseEnv_LoadsDotenvFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	writeFile(t, p, "GEMINI_API_KEY=from-dotenv\nJWT_SECRET=dotenv-secret\n")
	withDotenv(t, p)

	// Variables already present in the environment are not overridden.
	t.Setenv("JWT_SECRET", "real-secret")
	// Registered so the value godotenv sets is restored after the test.
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "real-secret", cfg.SecretKey)
	assert.Equal(t, "from-dotenv", cfg.GeminiAPIKey)
}
