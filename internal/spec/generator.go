package spec

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cinex10/kong-demo/internal/ai"
)

// Generator produces specifications for a business domain, preferring
// AI generation and degrading to the template catalog.
type Generator struct {
	client  ai.Client
	catalog Catalog
}

// NewGenerator creates a specification generator. A nil client disables
// AI generation entirely; the catalog must not be nil.
func NewGenerator(client ai.Client, catalog Catalog) *Generator {
	return &Generator{client: client, catalog: catalog}
}

// Generate returns a specification for the business type and feature
// list. It never fails: provider errors and unparseable output both
// degrade to the deterministic template, with the advisory error
// reporting why.
func (g *Generator) Generate(ctx context.Context, businessType string, features []string) (*Spec, error) {
	if g.client == nil {
		return g.catalog.Build(businessType, features), nil
	}

	response, err := g.client.Generate(ctx, buildPrompt(businessType, features))
	if err != nil {
		return g.catalog.Build(businessType, features), fmt.Errorf("AI specification generation failed: %w", err)
	}

	return Extract(response, businessType, g.catalog)
}

func buildPrompt(businessType string, features []string) string {
	return fmt.Sprintf(`Generate a complete API specification for a %s service that will be configured with Kong Gateway.

The specification should include the following components:
1. Services (backend APIs)
2. Routes (URL paths to the services)
3. Endpoints (HTTP methods and paths within each route)

The Kong Gateway will include these features: %s

Return ONLY a valid JSON object with this structure:
{
  "services": [
    {
      "name": "service_name",
      "description": "Description of the service",
      "url": "http://service-name:8080",
      "routes": [
        {
          "name": "route_name",
          "path": "/path",
          "endpoints": [
            {
              "path": "/specific-resource",
              "method": "GET",
              "description": "Description of endpoint",
              "request_params": { ... },
              "response_example": { ... }
            }
          ]
        }
      ]
    }
  ]
}

Make sure the specification is practical and realistic for the %s domain, with appropriate endpoints and data structures. Include at least 2-3 services with multiple endpoints for each. Ensure all JSON is properly formatted.
`, businessType, strings.Join(features, ", "), businessType)
}
