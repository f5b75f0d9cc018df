package spec

import "strings"

// TemplateFunc builds a deterministic specification for a business
// domain. The feature list is advisory; the builtin templates accept it
// for parity with AI generation but do not branch on it.
type TemplateFunc func(features []string) *Spec

// Catalog maps business domains to template builders. It is passed to
// the generator and the extractor explicitly so fallback behavior is
// injectable rather than ambient package state.
type Catalog map[string]TemplateFunc

// DefaultCatalog returns the builtin template catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		"generic":   genericTemplate,
		"insurance": insuranceTemplate,
		"ecommerce": ecommerceTemplate,
	}
}

// Resolve picks the template for a business type: exact match first,
// then domain-family substring match, then the generic template.
func (c Catalog) Resolve(businessType string) TemplateFunc {
	if fn, ok := c[businessType]; ok {
		return fn
	}
	for key, fn := range c {
		if key != "generic" && strings.Contains(businessType, key) {
			return fn
		}
	}
	if fn, ok := c["generic"]; ok {
		return fn
	}
	return genericTemplate
}

// Build renders the template for a business type.
func (c Catalog) Build(businessType string, features []string) *Spec {
	return c.Resolve(businessType)(features)
}

func genericTemplate(_ []string) *Spec {
	return &Spec{Services: []ServiceSpec{
		{
			Name:        "api_service",
			Description: "Generic API Service",
			URL:         "http://api-service:8080",
			Routes: []RouteSpec{
				{
					Name: "api_route",
					Path: "/api",
					Endpoints: []EndpointSpec{
						{
							Path:            "/items",
							Method:          "GET",
							Description:     "List all items",
							ResponseExample: map[string]any{"items": []any{map[string]any{"id": 1, "name": "Item 1"}}},
						},
						{
							Path:            "/items/{id}",
							Method:          "GET",
							Description:     "Get a specific item",
							RequestParams:   map[string]any{"id": "integer"},
							ResponseExample: map[string]any{"id": 1, "name": "Item 1", "description": "Description"},
						},
						{
							Path:            "/items",
							Method:          "POST",
							Description:     "Create a new item",
							RequestParams:   map[string]any{"name": "string", "description": "string"},
							ResponseExample: map[string]any{"id": 2, "name": "New Item", "description": "New Description"},
						},
					},
				},
			},
		},
	}}
}

func insuranceTemplate(_ []string) *Spec {
	return &Spec{Services: []ServiceSpec{
		{
			Name:        "policy_service",
			Description: "Insurance Policy Service",
			URL:         "http://policy-service:8080",
			Routes: []RouteSpec{
				{
					Name: "policy_route",
					Path: "/policies",
					Endpoints: []EndpointSpec{
						{
							Path:        "/",
							Method:      "GET",
							Description: "List all policies",
							ResponseExample: map[string]any{
								"policies": []any{map[string]any{"id": "POL-001", "type": "auto", "status": "active"}},
							},
						},
						{
							Path:          "/{id}",
							Method:        "GET",
							Description:   "Get a specific policy",
							RequestParams: map[string]any{"id": "string"},
							ResponseExample: map[string]any{
								"id":          "POL-001",
								"type":        "auto",
								"status":      "active",
								"customer_id": "CUS-123",
								"vehicle":     map[string]any{"make": "Toyota", "model": "Camry", "year": 2020},
							},
						},
					},
				},
			},
		},
		{
			Name:        "claims_service",
			Description: "Insurance Claims Service",
			URL:         "http://claims-service:8080",
			Routes: []RouteSpec{
				{
					Name: "claims_route",
					Path: "/claims",
					Endpoints: []EndpointSpec{
						{
							Path:          "/",
							Method:        "GET",
							Description:   "List all claims",
							RequestParams: map[string]any{"policy_id": "string (optional)"},
							ResponseExample: map[string]any{
								"claims": []any{map[string]any{"id": "CLM-001", "policy_id": "POL-001", "status": "pending"}},
							},
						},
						{
							Path:          "/{id}",
							Method:        "GET",
							Description:   "Get a specific claim",
							RequestParams: map[string]any{"id": "string"},
							ResponseExample: map[string]any{
								"id":            "CLM-001",
								"policy_id":     "POL-001",
								"status":        "pending",
								"incident_date": "2023-06-15",
								"description":   "Vehicle damage due to accident",
							},
						},
					},
				},
			},
		},
	}}
}

func ecommerceTemplate(_ []string) *Spec {
	return &Spec{Services: []ServiceSpec{
		{
			Name:        "product_service",
			Description: "Product Catalog Service",
			URL:         "http://product-service:8080",
			Routes: []RouteSpec{
				{
					Name: "product_route",
					Path: "/products",
					Endpoints: []EndpointSpec{
						{
							Path:          "/",
							Method:        "GET",
							Description:   "List all products",
							RequestParams: map[string]any{"category": "string (optional)", "limit": "integer (optional)"},
							ResponseExample: map[string]any{
								"products": []any{map[string]any{"id": 1, "name": "Product 1", "price": 29.99}},
							},
						},
						{
							Path:          "/{id}",
							Method:        "GET",
							Description:   "Get a specific product",
							RequestParams: map[string]any{"id": "integer"},
							ResponseExample: map[string]any{
								"id":          1,
								"name":        "Product 1",
								"price":       29.99,
								"description": "Product description",
								"category":    "electronics",
								"stock":       100,
							},
						},
					},
				},
			},
		},
		{
			Name:        "order_service",
			Description: "Order Management Service",
			URL:         "http://order-service:8080",
			Routes: []RouteSpec{
				{
					Name: "order_route",
					Path: "/orders",
					Endpoints: []EndpointSpec{
						{
							Path:          "/",
							Method:        "GET",
							Description:   "List all orders",
							RequestParams: map[string]any{"customer_id": "string (optional)"},
							ResponseExample: map[string]any{
								"orders": []any{map[string]any{"id": "ORD-001", "status": "shipped", "total": 59.98}},
							},
						},
						{
							Path:          "/{id}",
							Method:        "GET",
							Description:   "Get a specific order",
							RequestParams: map[string]any{"id": "string"},
							ResponseExample: map[string]any{
								"id":          "ORD-001",
								"customer_id": "CUS-123",
								"status":      "shipped",
								"total":       59.98,
								"items": []any{
									map[string]any{"product_id": 1, "quantity": 2, "price": 29.99},
								},
								"shipping_address": map[string]any{
									"street": "123 Main St",
									"city":   "Anytown",
									"zip":    "12345",
								},
							},
						},
					},
				},
			},
		},
	}}
}
