package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cinex10/kong-demo/internal/kong"
)

func TestApplyAuthFeature(t *testing.T) {
	cfg := kong.New()
	Apply(cfg, []string{"key-auth", "rate-limiting"}, Options{})

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, "key-auth", cfg.Plugins[0].Name)
	assert.Nil(t, cfg.Plugins[0].Config)

	assert.Equal(t, "rate-limiting", cfg.Plugins[1].Name)
	assert.Equal(t, map[string]any{"minute": 60, "policy": "local"}, cfg.Plugins[1].Config)

	require.Len(t, cfg.Consumers, 1)
	assert.Equal(t, "demo-user", cfg.Consumers[0].Username)
	assert.Equal(t, "key-auth", cfg.Consumers[0].AuthType)
}

func TestApplyCaseInsensitive(t *testing.T) {
	cfg := kong.New()
	Apply(cfg, []string{"CORS", " Rate-Limiting "}, Options{})

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, "cors", cfg.Plugins[0].Name)
	assert.Equal(t, "rate-limiting", cfg.Plugins[1].Name)
}

func TestApplyAliases(t *testing.T) {
	cfg := kong.New()
	Apply(cfg, []string{"logging", "cache"}, Options{})

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, "http-log", cfg.Plugins[0].Name)
	assert.Equal(t, "proxy-cache", cfg.Plugins[1].Name)
}

func TestApplyUnknownTokenIgnored(t *testing.T) {
	cfg := kong.New()
	Apply(cfg, []string{"quantum-firewall", "acl", "bot-detection"}, Options{})

	assert.Empty(t, cfg.Plugins)
	assert.Empty(t, cfg.Consumers)
}

func TestApplyOverrides(t *testing.T) {
	cfg := kong.New()
	Apply(cfg, []string{"rate-limiting", "http-log"}, Options{
		RateLimitPerMinute: 120,
		LogEndpoint:        "http://audit:9999/ingest",
	})

	assert.Equal(t, 120, cfg.Plugins[0].Config["minute"])
	assert.Equal(t, "http://audit:9999/ingest", cfg.Plugins[1].Config["http_endpoint"])
}

func TestApplyRequestTermination(t *testing.T) {
	cfg := kong.New()
	Apply(cfg, []string{"request-termination"}, Options{})
	assert.Empty(t, cfg.TerminationNote, "no routes, no note")

	cfg.AddService("orders", "")
	cfg.AddRoute("orders", []string{"/orders"}, "orders-main")
	Apply(cfg, []string{"request-termination"}, Options{})

	assert.Equal(t, "request-termination should be applied to route: orders-main", cfg.TerminationNote)
	assert.Empty(t, cfg.Plugins, "advisory note only, no plugin binding")
}

func TestApplyHTTPLogDefaults(t *testing.T) {
	cfg := kong.New()
	Apply(cfg, []string{"http-log"}, Options{})

	want := map[string]any{
		"http_endpoint": "http://logger:3000/log",
		"method":        "POST",
		"timeout":       10000,
		"keepalive":     60000,
	}
	assert.Equal(t, want, cfg.Plugins[0].Config)
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	assert.Len(t, catalog, 14)
	assert.Contains(t, catalog, "key-auth")
	assert.Contains(t, catalog, "bot-detection")
}
