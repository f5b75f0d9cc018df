package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cinex10/kong-demo/internal/kong"
	"github.com/Cinex10/kong-demo/internal/spec"
)

func TestApplySpecServicesAndRoutes(t *testing.T) {
	cfg := kong.New()
	s := &spec.Spec{Services: []spec.ServiceSpec{
		{
			Name: "policy-service",
			URL:  "http://policy-service:8080",
			Routes: []spec.RouteSpec{
				{Name: "policy_route", Path: "/policies"},
				{},
			},
		},
	}}

	added := ApplySpec(cfg, s, nil, Options{}, SpecOptions{BusinessType: "insurance"})

	require.Equal(t, []string{"policy_service"}, added)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, []string{"/policies"}, cfg.Routes[0].Paths)
	assert.Equal(t, "policy_route", cfg.Routes[0].Name)

	// Missing path and name take service-derived defaults.
	assert.Equal(t, []string{"/policy_service"}, cfg.Routes[1].Paths)
	assert.Equal(t, "policy_service-route", cfg.Routes[1].Name)

	svc := cfg.FindService("policy_service")
	require.NotNil(t, svc)
	require.NotNil(t, svc.Metadata)
	assert.Equal(t, "insurance", svc.Metadata.BusinessType)
	assert.Equal(t, "policy-service", svc.Metadata.Specification["name"])
}

func TestApplySpecEmptyServiceName(t *testing.T) {
	cfg := kong.New()
	s := &spec.Spec{Services: []spec.ServiceSpec{
		{Name: "orders", Routes: []spec.RouteSpec{{Path: "/orders"}}},
		{Name: "", Routes: []spec.RouteSpec{{Path: "/misc"}}},
	}}

	added := ApplySpec(cfg, s, nil, Options{}, SpecOptions{})

	require.Len(t, added, 2)
	assert.Equal(t, "orders", added[0])
	assert.Regexp(t, `^default_service_\d{4}$`, added[1])
	assert.NotEqual(t, added[0], added[1])

	cfg.Validate()
	for _, r := range cfg.Routes {
		assert.NotNil(t, cfg.FindService(r.ServiceName))
	}
	assert.Equal(t, added[1], cfg.Routes[1].ServiceName)
}

func TestApplySpecSkipsDuplicateServices(t *testing.T) {
	cfg := kong.New()
	s := &spec.Spec{Services: []spec.ServiceSpec{
		{Name: "users"},
		{Name: "Users"},
	}}

	added := ApplySpec(cfg, s, nil, Options{}, SpecOptions{})

	assert.Equal(t, []string{"users"}, added)
	assert.Len(t, cfg.Services, 1)
}

func TestApplySpecEndToEndFeatures(t *testing.T) {
	cfg := kong.New()

	ApplySpec(cfg, nil, []string{"key-auth", "rate-limiting"}, Options{}, SpecOptions{})

	require.Len(t, cfg.Plugins, 2)
	assert.Equal(t, "key-auth", cfg.Plugins[0].Name)
	assert.Equal(t, "rate-limiting", cfg.Plugins[1].Name)
	assert.Equal(t, map[string]any{"minute": 60, "policy": "local"}, cfg.Plugins[1].Config)

	require.Len(t, cfg.Consumers, 1)
	assert.Equal(t, "demo-user", cfg.Consumers[0].Username)
	assert.Equal(t, "key-auth", cfg.Consumers[0].AuthType)
}
