package scaffold

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cinex10/kong-demo/internal/kong"
	"github.com/Cinex10/kong-demo/internal/mock"
)

func demoConfig() *kong.Configuration {
	cfg := kong.New()
	cfg.AddService("users", "http://users:8080")
	cfg.AddRoute("users", []string{"/users"}, "")
	cfg.AddPlugin("key-auth", nil)
	cfg.AddPlugin("rate-limiting", map[string]any{"minute": 60, "policy": "local"})
	cfg.AddConsumer("demo-user", "key-auth")
	return cfg
}

func readProjectFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(content)
}

func TestWriteProject(t *testing.T) {
	outputDir := t.TempDir()
	writer := NewWriter(outputDir, nil)

	result, err := writer.WriteProject(context.Background(), "demo", demoConfig(), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "demo"), result.Dir)
	assert.Empty(t, result.Warnings)

	for _, name := range []string{
		"kong-config.json", "kong-config.yaml", "kong.yaml",
		"docker-compose.yaml", "setup.sh", "README.md", "test-api.sh",
	} {
		assert.FileExists(t, filepath.Join(result.Dir, name))
	}
	assert.NoFileExists(t, filepath.Join(result.Dir, "deploy-to-kong.sh"))

	// Written configuration must load back into an identical model.
	var loaded kong.Configuration
	require.NoError(t, loaded.Load(filepath.Join(result.Dir, "kong-config.json")))
	assert.Len(t, loaded.Services, 1)
	assert.Len(t, loaded.Plugins, 2)

	declarative := readProjectFile(t, result.Dir, "kong.yaml")
	assert.Contains(t, declarative, `_format_version: "3.0"`)
	assert.Contains(t, declarative, "demo-key-demo-user")

	compose := readProjectFile(t, result.Dir, "docker-compose.yaml")
	assert.Contains(t, compose, "image: kong:3.4")
	assert.Contains(t, compose, "build: ./mock-apis/users")

	testScript := readProjectFile(t, result.Dir, "test-api.sh")
	assert.Contains(t, testScript, "demo-key-demo-user")
	assert.Contains(t, testScript, "/users")
}

func TestWriteProjectScriptsExecutable(t *testing.T) {
	writer := NewWriter(t.TempDir(), nil)
	result, err := writer.WriteProject(context.Background(), "demo", demoConfig(), true)
	require.NoError(t, err)

	for _, name := range []string{"setup.sh", "test-api.sh", "deploy-to-kong.sh"} {
		info, err := os.Stat(filepath.Join(result.Dir, name))
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0o111, "%s must be executable", name)
	}
	info, err := os.Stat(filepath.Join(result.Dir, "README.md"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&0o111)
}

func TestWriteProjectAssumeRunning(t *testing.T) {
	writer := NewWriter(t.TempDir(), nil)
	result, err := writer.WriteProject(context.Background(), "demo", demoConfig(), true)
	require.NoError(t, err)

	compose := readProjectFile(t, result.Dir, "docker-compose.yaml")
	assert.NotContains(t, compose, "image: kong")

	deploy := readProjectFile(t, result.Dir, "deploy-to-kong.sh")
	assert.Contains(t, deploy, `--data "name=users"`)
	assert.Contains(t, deploy, "/services/users/routes")
	assert.Contains(t, deploy, `"name":"rate-limiting"`)
	assert.Contains(t, deploy, "demo-key-demo-user")
}

func TestWriteProjectMockAPIs(t *testing.T) {
	writer := NewWriter(t.TempDir(), nil)
	result, err := writer.WriteProject(context.Background(), "demo", demoConfig(), false)
	require.NoError(t, err)

	mockDir := filepath.Join(result.Dir, "mock-apis", "users")
	for _, name := range []string{"server.js", "package.json", "Dockerfile"} {
		assert.FileExists(t, filepath.Join(mockDir, name))
	}
	server := readProjectFile(t, mockDir, "server.js")
	assert.Contains(t, server, "const serviceName = 'users';")
}

func TestWriteProjectSpecDrivenMock(t *testing.T) {
	cfg := kong.New()
	cfg.AddService("policy_service", "http://policy_service:8080")
	cfg.Services[0].Metadata = &kong.ServiceMetadata{
		BusinessType: "insurance",
		Specification: map[string]any{
			"name": "policy_service",
			"routes": []any{map[string]any{
				"name": "policies",
				"path": "/policies",
				"endpoints": []any{
					map[string]any{"path": "/", "method": "GET", "description": "List policies"},
				},
			}},
		},
	}

	writer := NewWriter(t.TempDir(), nil)
	result, err := writer.WriteProject(context.Background(), "demo", cfg, false)
	require.NoError(t, err)

	server := readProjectFile(t, filepath.Join(result.Dir, "mock-apis", "policy_service"), "server.js")
	assert.Contains(t, server, "db.policies = [")
	assert.Contains(t, server, "app.get('/policies', (req, res)")
}

func TestGeneratorFor(t *testing.T) {
	writer := NewWriter(t.TempDir(), nil)

	generator, businessType, _ := writer.generatorFor(kong.Service{Name: "plain"})
	assert.IsType(t, &mock.BasicGenerator{}, generator)
	assert.Equal(t, "generic", businessType)

	generator, businessType, opts := writer.generatorFor(kong.Service{
		Name: "claims",
		Metadata: &kong.ServiceMetadata{
			BusinessType: "insurance",
			BusinessParams: map[string]any{
				"policy_type": "health",
				"features":    []any{"basic", "claims-tracking"},
			},
		},
	})
	assert.IsType(t, &mock.AIGenerator{}, generator)
	assert.Equal(t, "insurance", businessType)
	assert.Equal(t, "health", opts.PolicyType)
	assert.Equal(t, []string{"basic", "claims-tracking"}, opts.Features)
}

func TestSpecFromFragment(t *testing.T) {
	raw := map[string]any{
		"name":        "orders",
		"description": "Order processing",
	}
	serviceSpec, err := specFromFragment(raw)
	require.NoError(t, err)
	assert.Equal(t, "orders", serviceSpec.Name)
	assert.Equal(t, "Order processing", serviceSpec.Description)

	// Round-trips through JSON, so a service marshals into a usable fragment.
	data, err := json.Marshal(serviceSpec)
	require.NoError(t, err)
	var fragment map[string]any
	require.NoError(t, json.Unmarshal(data, &fragment))
	again, err := specFromFragment(fragment)
	require.NoError(t, err)
	assert.Equal(t, serviceSpec, again)
}
