// Package kong owns the in-memory representation of a Kong gateway
// configuration: services, routes, plugins and consumers, plus the
// serialization views used by the generator and the deployment client.
package kong

// Service is a named backend upstream the gateway forwards to.
type Service struct {
	// Name is the unique key, normalized to lowercase with underscores.
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`

	// Metadata carries generator-side context (business domain, parameters,
	// originating specification fragment). The model itself never reads it;
	// it is consumed by mock API generation.
	Metadata *ServiceMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ServiceMetadata records where a service came from and what kind of
// business logic its mock backend should implement.
type ServiceMetadata struct {
	BusinessType   string         `json:"business_type,omitempty" yaml:"business_type,omitempty"`
	BusinessParams map[string]any `json:"business_params,omitempty" yaml:"business_params,omitempty"`
	Specification  map[string]any `json:"specification,omitempty" yaml:"specification,omitempty"`
}

// Route binds URL path prefixes to a service, referenced by name.
type Route struct {
	ServiceName string   `json:"service_name" yaml:"service_name"`
	Paths       []string `json:"paths" yaml:"paths"`
	Name        string   `json:"name" yaml:"name"`
}

// Plugin is a globally scoped gateway behavior with an optional,
// plugin-specific configuration bag.
type Plugin struct {
	Name   string         `json:"name" yaml:"name"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Consumer is an identity the gateway can authenticate. AuthType records
// which credential type was issued for it, if any.
type Consumer struct {
	Username string `json:"username" yaml:"username"`
	AuthType string `json:"auth_type,omitempty" yaml:"auth_type,omitempty"`
}

// authKinds are the plugin names that authenticate consumers.
var authKinds = []string{"key-auth", "jwt", "oauth2", "basic-auth"}

// IsAuthKind reports whether name is one of Kong's consumer
// authentication plugins.
func IsAuthKind(name string) bool {
	for _, k := range authKinds {
		if name == k {
			return true
		}
	}
	return false
}

// AuthKinds returns the consumer authentication plugin names.
func AuthKinds() []string {
	out := make([]string, len(authKinds))
	copy(out, authKinds)
	return out
}
