package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cinex10/kong-demo/internal/spec"
)

// SpecGenerator builds a mock service whose endpoints mirror an API
// specification. Business type and options are ignored; the
// specification is the source of truth.
type SpecGenerator struct {
	spec *spec.Spec
}

// NewSpecGenerator creates a generator driven by the given specification.
func NewSpecGenerator(s *spec.Spec) *SpecGenerator {
	return &SpecGenerator{spec: s}
}

type serverView struct {
	ServiceName string
	Description string
	Routes      []routeView
}

type routeView struct {
	Name       string
	Collection string
	Endpoints  []endpointView
}

type endpointView struct {
	Method      string
	Path        string
	Description string
	Kind        string
}

// Generate builds the file set from the specification of the named
// service, falling back to the first service when the name is unknown.
func (g *SpecGenerator) Generate(_ context.Context, serviceName, _ string, _ Options) (map[string]string, error) {
	view := g.buildView(serviceName)
	server, err := render("server_spec.js.tmpl", view)
	if err != nil {
		return nil, err
	}
	return assembleFiles(server, serviceName, view.Description)
}

func (g *SpecGenerator) buildView(serviceName string) serverView {
	view := serverView{
		ServiceName: serviceName,
		Description: fmt.Sprintf("Mock API for %s", serviceName),
	}

	serviceSpec := g.spec.FindService(serviceName)
	if serviceSpec == nil {
		return view
	}
	if serviceSpec.Description != "" {
		view.Description = serviceSpec.Description
	}

	for _, route := range serviceSpec.Routes {
		routePath := route.Path
		if routePath == "" {
			routePath = "/api"
		}
		routeName := route.Name
		if routeName == "" {
			routeName = "api_route"
		}

		rv := routeView{
			Name:       routeName,
			Collection: collectionName(routeName),
		}
		for _, endpoint := range route.Endpoints {
			rv.Endpoints = append(rv.Endpoints, buildEndpointView(routePath, endpoint))
		}
		view.Routes = append(view.Routes, rv)
	}
	return view
}

func buildEndpointView(routePath string, endpoint spec.EndpointSpec) endpointView {
	method := strings.ToLower(endpoint.Method)
	if method == "" {
		method = "get"
	}

	fullPath := routePath
	if endpoint.Path != "" && endpoint.Path != "/" {
		if !strings.HasPrefix(endpoint.Path, "/") {
			fullPath += "/"
		}
		fullPath += endpoint.Path
	}
	// Specifications write identifier segments as {id}; Express wants :id.
	expressPath := strings.NewReplacer("{id}", ":id").Replace(fullPath)

	return endpointView{
		Method:      method,
		Path:        expressPath,
		Description: endpoint.Description,
		Kind:        handlerKind(method, fullPath),
	}
}

// handlerKind classifies an endpoint into one of the handler bodies the
// server template knows how to emit.
func handlerKind(method, fullPath string) string {
	switch method {
	case "get":
		if strings.Contains(fullPath, "{id}") {
			return "get-by-id"
		}
		return "list"
	case "post":
		return "create"
	case "put", "patch":
		return "update"
	case "delete":
		return "delete"
	default:
		return "other"
	}
}

func collectionName(routeName string) string {
	return strings.NewReplacer("-", "_", "/", "_").Replace(routeName)
}
