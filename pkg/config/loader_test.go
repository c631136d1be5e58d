package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Run("Should load built-in defaults", func(t *testing.T) {
		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, 8087, cfg.Server.Port)
		assert.Equal(t, "Options", cfg.Sheets.OptionsTab)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "info", cfg.Runtime.LogLevel)
	})
	t.Run("Should apply environment overrides", func(t *testing.T) {
		t.Setenv("FRETFORGE_SERVER_PORT", "9100")
		t.Setenv("FRETFORGE_SHEETS_OPTIONS_TAB", "BanjoOptions")
		t.Setenv("FRETFORGE_RUNTIME_LOG_LEVEL", "debug")
		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.Server.Port)
		assert.Equal(t, "BanjoOptions", cfg.Sheets.OptionsTab)
		assert.Equal(t, "debug", cfg.Runtime.LogLevel)
	})
	t.Run("Should parse duration strings from environment", func(t *testing.T) {
		t.Setenv("FRETFORGE_CACHE_TTL", "90s")
		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	})
	t.Run("Should give flag overrides highest precedence", func(t *testing.T) {
		t.Setenv("FRETFORGE_SERVER_PORT", "9100")
		l := NewLoader()
		l.SetOverride("server.port", 9200)
		cfg, err := l.Load()
		require.NoError(t, err)
		assert.Equal(t, 9200, cfg.Server.Port)
	})
	t.Run("Should reject invalid log level", func(t *testing.T) {
		t.Setenv("FRETFORGE_RUNTIME_LOG_LEVEL", "verbose")
		_, err := NewLoader().Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})
	t.Run("Should reject out-of-range port", func(t *testing.T) {
		l := NewLoader()
		l.SetOverride("server.port", 0)
		_, err := l.Load()
		require.Error(t, err)
	})
}

func TestTransformEnvKey(t *testing.T) {
	t.Run("Should map prefixed vars to dotted paths", func(t *testing.T) {
		assert.Equal(t, "sheets.base_url", transformEnvKey("FRETFORGE_SHEETS_BASE_URL"))
		assert.Equal(t, "server.port", transformEnvKey("FRETFORGE_SERVER_PORT"))
		assert.Equal(t, "cache.max_entries", transformEnvKey("FRETFORGE_CACHE_MAX_ENTRIES"))
	})
	t.Run("Should tolerate degenerate names", func(t *testing.T) {
		assert.Equal(t, "", transformEnvKey("FRETFORGE_"))
		assert.Equal(t, "server", transformEnvKey("FRETFORGE_SERVER"))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should fall back to defaults without attachment", func(t *testing.T) {
		cfg := FromContext(t.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, Default().Server.Port, cfg.Server.Port)
	})
	t.Run("Should return the attached configuration", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Port = 9999
		ctx := ContextWithConfig(t.Context(), cfg)
		assert.Same(t, cfg, FromContext(ctx))
		assert.Equal(t, 9999, FromContext(ctx).Server.Port)
	})
}
