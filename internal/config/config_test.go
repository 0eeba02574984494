package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "LOG_JSON", "LOG_LEVEL",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_MODEL", "ARK_FALLBACK_MODELS",
		"ARK_TEMPERATURE", "ARK_TOP_P", "ARK_MAX_TOKENS", "AI_REQUEST_TIMEOUT", "AI_HISTORY_LIMIT",
		"PIX_KEY", "SESSION_IDLE_TTL", "SESSION_SWEEP_INTERVAL", "REPORT_CACHE_TTL",
		"TRANSCRIPT_BACKEND", "SQLITE_PATH", "REPORT_CACHE_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	require.False(t, cfg.Server.LogJSON)
	require.Equal(t, "info", cfg.Server.LogLevel)

	require.False(t, cfg.AI.Enabled())
	require.Equal(t, 25*time.Second, cfg.AI.RequestTimeout)
	require.Equal(t, 10, cfg.AI.HistoryLimit)

	require.Equal(t, 2*time.Hour, cfg.Funnel.SessionIdleTTL)
	require.Equal(t, 30*time.Minute, cfg.Funnel.ReportCacheTTL)
	require.NotEmpty(t, cfg.Funnel.PixKey)

	require.Equal(t, "memory", cfg.Storage.TranscriptBackend)
	require.Equal(t, "memory", cfg.Storage.CacheBackend)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("ARK_API_KEY", "key")
	t.Setenv("ARK_MODEL", "primary")
	t.Setenv("ARK_FALLBACK_MODELS", "backup,primary, spare")
	t.Setenv("ARK_TEMPERATURE", "0.7")
	t.Setenv("AI_HISTORY_LIMIT", "0")
	t.Setenv("PIX_KEY", "pix@teste.com")
	t.Setenv("SESSION_IDLE_TTL", "90m")
	t.Setenv("TRANSCRIPT_BACKEND", "SQLite")
	t.Setenv("REPORT_CACHE_BACKEND", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	require.True(t, cfg.Server.LogJSON)

	require.True(t, cfg.AI.Enabled())
	require.Equal(t, []string{"primary", "backup", "spare"}, cfg.AI.Models())
	require.InDelta(t, 0.7, *cfg.AI.Temperature, 1e-9)
	require.Equal(t, 1, cfg.AI.HistoryLimit)

	require.Equal(t, "pix@teste.com", cfg.Funnel.PixKey)
	require.Equal(t, 90*time.Minute, cfg.Funnel.SessionIdleTTL)
	require.Equal(t, "sqlite", cfg.Storage.TranscriptBackend)
	require.Equal(t, "redis", cfg.Storage.CacheBackend)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"port":       {"PORT", "80 80"},
		"bool":       {"LOG_JSON", "maybe"},
		"duration":   {"SESSION_IDLE_TTL", "soon"},
		"float":      {"ARK_TEMPERATURE", "warm"},
		"int":        {"ARK_MAX_TOKENS", "many"},
		"backend":    {"TRANSCRIPT_BACKEND", "postgres"},
		"cache":      {"REPORT_CACHE_BACKEND", "memcached"},
		"ai timeout": {"AI_REQUEST_TIMEOUT", "-"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewChatModelRequiresCredentials(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_, err := AIConfig{Model: "primary"}.NewChatModel(ctx, "primary")
	require.Error(t, err)
}
