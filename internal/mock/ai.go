package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cinex10/kong-demo/internal/ai"
)

type promptData struct {
	ServiceName  string
	BusinessType string
	PolicyType   string
	Focus        string
	Features     []string
}

// AIGenerator asks an AI provider for domain-specific business logic
// and extracts the JavaScript server from its response. Provider
// failures degrade to the basic CRUD server, with the advisory error
// reporting why.
type AIGenerator struct {
	client     ai.Client
	promptName string
	promptData func(serviceName, businessType string, opts Options) promptData
	fallback   *BasicGenerator
}

func newInsuranceGenerator(client ai.Client) Generator {
	return &AIGenerator{
		client:     client,
		promptName: "prompt_insurance.tmpl",
		promptData: func(serviceName, businessType string, opts Options) promptData {
			return promptData{
				ServiceName:  serviceName,
				BusinessType: businessType,
				PolicyType:   opts.policyType(),
				Features:     opts.features(),
			}
		},
		fallback: NewBasicGenerator(),
	}
}

func newEcommerceGenerator(client ai.Client) Generator {
	return &AIGenerator{
		client:     client,
		promptName: "prompt_ecommerce.tmpl",
		promptData: func(serviceName, businessType string, opts Options) promptData {
			return promptData{
				ServiceName: serviceName,
				Focus:       ecommerceFocus(businessType, opts.productType()),
				Features:    opts.features(),
			}
		},
		fallback: NewBasicGenerator(),
	}
}

func ecommerceFocus(businessType, productType string) string {
	switch {
	case strings.Contains(businessType, "product"):
		return fmt.Sprintf("product catalog for %s", productType)
	case strings.Contains(businessType, "order"):
		return "order processing and fulfillment"
	default:
		return fmt.Sprintf("general e-commerce platform selling %s", productType)
	}
}

// Generate builds the file set, preferring AI-generated business logic.
func (g *AIGenerator) Generate(ctx context.Context, serviceName, businessType string, opts Options) (map[string]string, error) {
	description := fmt.Sprintf("AI-generated mock API for %s (%s)", serviceName, businessType)

	if g.client == nil {
		server, err := g.fallback.serverJS(serviceName)
		if err != nil {
			return nil, err
		}
		return assembleFiles(server, serviceName, description)
	}

	prompt, err := render(g.promptName, g.promptData(serviceName, businessType, opts))
	if err != nil {
		return nil, err
	}

	response, err := g.client.Generate(ctx, strings.TrimSpace(prompt))
	if err != nil {
		server, fallbackErr := g.fallback.serverJS(serviceName)
		if fallbackErr != nil {
			return nil, fallbackErr
		}
		files, fallbackErr := assembleFiles(server, serviceName, description)
		if fallbackErr != nil {
			return nil, fallbackErr
		}
		return files, fmt.Errorf("AI mock generation failed: %w", err)
	}

	files, err := assembleFiles(ExtractJavaScript(response), serviceName, description)
	return files, err
}
