package spec

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns a canned response or error.
type scriptedClient struct {
	response string
	err      error
	prompts  []string
}

func (c *scriptedClient) Generate(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.response, c.err
}

func TestGeneratorWithoutClient(t *testing.T) {
	g := NewGenerator(nil, DefaultCatalog())

	s, err := g.Generate(context.Background(), "ecommerce", []string{"key-auth"})
	require.NoError(t, err)
	assert.Equal(t, "product_service", s.Services[0].Name)
}

func TestGeneratorParsesAIResponse(t *testing.T) {
	client := &scriptedClient{response: "```json\n" + validSpecJSON + "\n```"}
	g := NewGenerator(client, DefaultCatalog())

	s, err := g.Generate(context.Background(), "generic", []string{"rate-limiting", "cors"})
	require.NoError(t, err)
	assert.Equal(t, "users_service", s.Services[0].Name)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "rate-limiting, cors")
	assert.Contains(t, client.prompts[0], "generic")
}

func TestGeneratorFallsBackOnProviderError(t *testing.T) {
	client := &scriptedClient{err: fmt.Errorf("provider down")}
	g := NewGenerator(client, DefaultCatalog())

	s, err := g.Generate(context.Background(), "insurance", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
	assert.Equal(t, DefaultCatalog().Build("insurance", nil), s)
}

func TestGeneratorFallsBackOnGarbageOutput(t *testing.T) {
	client := &scriptedClient{response: "I am sorry, I cannot help with that."}
	g := NewGenerator(client, DefaultCatalog())

	s, err := g.Generate(context.Background(), "generic", nil)
	require.Error(t, err)
	assert.Equal(t, "api_service", s.Services[0].Name)
}
