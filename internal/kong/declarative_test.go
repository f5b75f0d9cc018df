package kong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoConfig() *Configuration {
	cfg := New()
	cfg.AddService("policy_service", "http://policy-service:8080")
	cfg.AddService("claims_service", "http://claims-service:8080")
	cfg.AddRoute("policy_service", []string{"/policies"}, "policy_service-route")
	cfg.AddRoute("claims_service", []string{"/claims"}, "claims_service-route")
	cfg.AddPlugin("key-auth", nil)
	cfg.AddPlugin("rate-limiting", map[string]any{"minute": 60, "policy": "local"})
	cfg.AddConsumer("demo-user", "key-auth")
	cfg.AddConsumer("partner", "jwt")
	return cfg
}

func TestToDeclarative(t *testing.T) {
	d := demoConfig().ToDeclarative()

	assert.Equal(t, "3.0", d.FormatVersion)
	require.Len(t, d.Services, 2)
	assert.Equal(t, "policy_service", d.Services[0].Name)
	assert.Equal(t, "http://policy-service:8080", d.Services[0].URL)

	require.Len(t, d.Routes, 2)
	assert.Equal(t, "policy_service", d.Routes[0].Service.Name)
	assert.Equal(t, []string{"/policies"}, d.Routes[0].Paths)

	assert.Len(t, d.Plugins, 2)
	assert.NotNil(t, d.ConsumerGroups)
	assert.Empty(t, d.ConsumerGroups)
}

func TestToDeclarativeKeyAuthCredentials(t *testing.T) {
	d := demoConfig().ToDeclarative()

	// Only the key-auth consumer gets a synthesized credential.
	require.Len(t, d.Consumers, 2)
	require.Len(t, d.KeyAuthCredentials, 1)
	assert.Equal(t, "demo-user", d.KeyAuthCredentials[0].Consumer.Username)
	assert.Equal(t, "demo-key-demo-user", d.KeyAuthCredentials[0].Key)
}

func TestToDeclarativeNoConsumers(t *testing.T) {
	cfg := New()
	cfg.AddService("api", "")

	d := cfg.ToDeclarative()
	assert.Empty(t, d.KeyAuthCredentials)
	assert.Empty(t, d.Consumers)
}
