package mock

import (
	"context"
	"fmt"
)

// BasicGenerator produces a simple CRUD service with hardcoded items
// plus health, info and echo endpoints. It needs no AI and never
// consults the business type.
type BasicGenerator struct{}

// NewBasicGenerator creates a basic CRUD generator.
func NewBasicGenerator() *BasicGenerator {
	return &BasicGenerator{}
}

// Generate builds the file set for a basic CRUD service.
func (g *BasicGenerator) Generate(_ context.Context, serviceName, _ string, _ Options) (map[string]string, error) {
	return g.files(serviceName, fmt.Sprintf("Mock API for %s", serviceName))
}

func (g *BasicGenerator) serverJS(serviceName string) (string, error) {
	return render("server_basic.js.tmpl", map[string]string{"ServiceName": serviceName})
}

func (g *BasicGenerator) files(serviceName, description string) (map[string]string, error) {
	server, err := g.serverJS(serviceName)
	if err != nil {
		return nil, err
	}
	return assembleFiles(server, serviceName, description)
}

// assembleFiles pairs a server.js body with the shared package.json and
// Dockerfile every mock service carries.
func assembleFiles(serverJS, serviceName, description string) (map[string]string, error) {
	packageJSON, err := render("package.json.tmpl", map[string]string{
		"ServiceName": serviceName,
		"Description": description,
	})
	if err != nil {
		return nil, err
	}
	dockerfile, err := render("Dockerfile.tmpl", nil)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"server.js":    serverJS,
		"package.json": packageJSON,
		"Dockerfile":   dockerfile,
	}, nil
}
