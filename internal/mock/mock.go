// Package mock generates the backend services the gateway fronts in a
// demo project. Each generator produces a self-contained Node.js
// service as a map of file name to file content (server.js,
// package.json, Dockerfile) ready to be written under
// mock-apis/<service>/.
package mock

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/Cinex10/kong-demo/internal/ai"
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(
	template.New("mock").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl"),
)

// Options tunes the generated business logic.
type Options struct {
	PolicyType  string
	ProductType string
	Features    []string
}

func (o Options) policyType() string {
	if o.PolicyType == "" {
		return "auto"
	}
	return o.PolicyType
}

func (o Options) productType() string {
	if o.ProductType == "" {
		return "electronics"
	}
	return o.ProductType
}

func (o Options) features() []string {
	if len(o.Features) == 0 {
		return []string{"basic"}
	}
	return o.Features
}

// Generator produces the file set of one mock backend service.
type Generator interface {
	Generate(ctx context.Context, serviceName, businessType string, opts Options) (map[string]string, error)
}

// constructors maps business types to generator construction functions.
// Unknown business types fall back to the basic CRUD generator.
var constructors = map[string]func(client ai.Client) Generator{
	"generic": func(ai.Client) Generator { return NewBasicGenerator() },

	"insurance":        newInsuranceGenerator,
	"insurance-policy": newInsuranceGenerator,
	"insurance-claims": newInsuranceGenerator,
	"health-insurance": newInsuranceGenerator,
	"auto-insurance":   newInsuranceGenerator,

	"ecommerce":         newEcommerceGenerator,
	"ecommerce-product": newEcommerceGenerator,
	"ecommerce-order":   newEcommerceGenerator,
}

// ForBusinessType selects the generator for a business type. The AI
// client may be nil, in which case AI-backed generators degrade to the
// basic one.
func ForBusinessType(businessType string, client ai.Client) Generator {
	if construct, ok := constructors[businessType]; ok {
		return construct(client)
	}
	return NewBasicGenerator()
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
